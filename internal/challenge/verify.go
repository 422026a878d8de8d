package challenge

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brentdax/heroku-certs/internal/logger"
)

// DefaultPollInterval is how long the verifier sleeps between polls.
const DefaultPollInterval = 10 * time.Second

// Verifier polls the live site until a challenge is served correctly.
type Verifier struct {
	// HTTPClient performs the polls. Defaults to a client with a
	// per-request timeout so one hung poll cannot stall the loop.
	HTTPClient *http.Client

	// Port overrides the HTTP port polled on the domain (0 means 80).
	Port int

	// Interval between polls. Defaults to DefaultPollInterval.
	Interval time.Duration
}

// NewVerifier creates a Verifier with default polling behavior.
func NewVerifier() *Verifier {
	return &Verifier{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Wait blocks until the challenge is observed as satisfied on the live
// site, polling at a fixed interval. There is no timeout and no
// attempt cap; the only other way out is the context. Cancellation is
// not an error: the wait ends early and the challenge is reported
// unresolved, reflecting whatever the last poll observed.
func (v *Verifier) Wait(ctx context.Context, ch Challenge) (bool, error) {
	logger.Warn("Verifying challenge for %s. This might take a few minutes if your app is restarting. (Ctrl-C to skip.)", ch.Domain)

	for {
		if v.verify(ch) {
			return true, nil
		}

		select {
		case <-ctx.Done():
			logger.Warn("Skipping validation wait for %s", ch.Domain)
			return false, nil
		case <-time.After(v.interval()):
		}
	}
}

// verify performs one poll: fetch the challenge URL and compare the
// body against the key authorization.
func (v *Verifier) verify(ch Challenge) bool {
	url := v.challengeURL(ch)
	logger.Debug("Polling %s", url)

	client := v.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Get(url)
	if err != nil {
		logger.Debug("Poll failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("Poll returned status %d", resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(body)) == ch.KeyAuth
}

func (v *Verifier) challengeURL(ch Challenge) string {
	host := ch.Domain
	if v.Port != 0 && v.Port != 80 {
		host = net.JoinHostPort(ch.Domain, strconv.Itoa(v.Port))
	}
	return "http://" + host + ch.Path()
}

func (v *Verifier) interval() time.Duration {
	if v.Interval > 0 {
		return v.Interval
	}
	return DefaultPollInterval
}
