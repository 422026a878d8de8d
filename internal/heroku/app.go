package heroku

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brentdax/heroku-certs/internal/logger"
)

// DefaultDomainSuffix marks hostnames Heroku assigns automatically;
// they never need a custom certificate.
const DefaultDomainSuffix = ".herokuapp.com"

// Domain is a hostname bound to an application.
type Domain struct {
	ID        string    `json:"id"`
	Hostname  string    `json:"hostname"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SSLEndpoint is a TLS termination slot holding one certificate chain
// and private key.
type SSLEndpoint struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CName            string    `json:"cname"`
	CertificateChain string    `json:"certificate_chain"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type endpointUpdate struct {
	CertificateChain string `json:"certificate_chain"`
	PrivateKey       string `json:"private_key"`
}

// App is a handle on one Heroku application.
type App struct {
	client *Client
	Name   string
	DryRun bool
}

// Domains fetches every hostname bound to the app.
func (a *App) Domains(ctx context.Context) ([]Domain, error) {
	var domains []Domain
	err := a.client.do(ctx, http.MethodGet, "/apps/"+a.Name+"/domains", nil, &domains)
	if err != nil {
		return nil, err
	}
	return domains, nil
}

// CustomDomains returns the hostnames that need certificate coverage:
// everything except Heroku's own default subdomains. The kind field
// would be the obvious filter, but it is not reliably populated, so
// the suffix rule is authoritative.
func (a *App) CustomDomains(ctx context.Context) ([]string, error) {
	domains, err := a.Domains(ctx)
	if err != nil {
		return nil, err
	}

	var hostnames []string
	for _, d := range domains {
		if strings.HasSuffix(d.Hostname, DefaultDomainSuffix) {
			continue
		}
		hostnames = append(hostnames, d.Hostname)
	}
	return hostnames, nil
}

// SSLEndpoints fetches the app's TLS termination slots.
func (a *App) SSLEndpoints(ctx context.Context) ([]SSLEndpoint, error) {
	var endpoints []SSLEndpoint
	err := a.client.do(ctx, http.MethodGet, "/apps/"+a.Name+"/ssl-endpoints", nil, &endpoints)
	if err != nil {
		return nil, err
	}
	return endpoints, nil
}

// UpdateEndpoint replaces the certificate chain and private key on the
// named endpoint.
func (a *App) UpdateEndpoint(ctx context.Context, name, chain, key string) (*SSLEndpoint, error) {
	var updated SSLEndpoint
	err := a.client.do(ctx, http.MethodPatch, "/apps/"+a.Name+"/ssl-endpoints/"+name,
		endpointUpdate{CertificateChain: chain, PrivateKey: key}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// EndpointCountError reports an SSL endpoint count the installer
// refuses to act on. The swap is irreversible, so the tool never
// guesses which endpoint to target.
type EndpointCountError struct {
	App   string
	Count int
}

// Error implements the error interface.
func (e *EndpointCountError) Error() string {
	return fmt.Sprintf("The application %s has %d endpoints, not 1.", e.App, e.Count)
}

// UpdateCertificate installs the key and certificate chain on the
// app's single SSL endpoint. The endpoint set is re-fetched on every
// call; any count other than one is an *EndpointCountError and no
// endpoint is touched. In dry-run mode the intended replacement is
// logged and no mutation happens.
func (a *App) UpdateCertificate(ctx context.Context, key, certificate []byte) error {
	endpoints, err := a.SSLEndpoints(ctx)
	if err != nil {
		return err
	}

	if len(endpoints) != 1 {
		return &EndpointCountError{App: a.Name, Count: len(endpoints)}
	}
	endpoint := endpoints[0]

	if a.DryRun {
		logger.Warn("Would replace certificate on endpoint %s", endpoint.Name)
		return nil
	}

	_, err = a.UpdateEndpoint(ctx, endpoint.Name, string(certificate), string(key))
	return err
}
