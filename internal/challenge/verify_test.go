package challenge

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestChallengePath(t *testing.T) {
	ch := Challenge{Token: "abc123"}
	if got := ch.Path(); got != "/.well-known/acme-challenge/abc123" {
		t.Errorf("unexpected path: %q", got)
	}
}

func TestURIRootPath(t *testing.T) {
	if got := URIRootPath(); got != ".well-known/acme-challenge" {
		t.Errorf("unexpected root path: %q", got)
	}
}

func TestValidation(t *testing.T) {
	ch := Challenge{KeyAuth: "token.thumbprint"}
	if string(ch.Validation()) != "token.thumbprint" {
		t.Errorf("unexpected payload: %q", ch.Validation())
	}
}

// newChallengeServer serves the given body for a challenge token and
// returns a matching Challenge and Verifier pointed at it.
func newChallengeServer(t *testing.T, token string, handler http.HandlerFunc) (Challenge, *Verifier) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(server.URL, "http://"))
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)

	ch := Challenge{Domain: host, Token: token, KeyAuth: token + ".thumbprint"}
	v := NewVerifier()
	v.Port = port
	v.Interval = 10 * time.Millisecond
	return ch, v
}

func TestWait(t *testing.T) {
	t.Run("satisfied challenge validates", func(t *testing.T) {
		ch, v := newChallengeServer(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/.well-known/acme-challenge/tok1" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("tok1.thumbprint\n"))
		})

		ok, err := v.Wait(context.Background(), ch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected validation to succeed")
		}
	})

	t.Run("polls until content appears", func(t *testing.T) {
		var calls int
		ch, v := newChallengeServer(t, "tok2", func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("tok2.thumbprint"))
		})

		ok, err := v.Wait(context.Background(), ch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Error("expected eventual validation")
		}
		if calls < 3 {
			t.Errorf("expected at least 3 polls, got %d", calls)
		}
	})

	t.Run("cancellation is a graceful skip", func(t *testing.T) {
		ch, v := newChallengeServer(t, "tok3", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("wrong content"))
		})

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()

		ok, err := v.Wait(ctx, ch)
		if err != nil {
			t.Fatalf("cancellation must not be an error, got %v", err)
		}
		if ok {
			t.Error("cancelled wait should report unresolved")
		}
	})

	t.Run("mismatched body keeps polling", func(t *testing.T) {
		var calls int
		ch, v := newChallengeServer(t, "tok4", func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte("stale-value"))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		ok, _ := v.Wait(ctx, ch)
		if ok {
			t.Error("mismatched body must not validate")
		}
		if calls < 2 {
			t.Errorf("expected repeated polls, got %d", calls)
		}
	})
}
