package deploy

import (
	"context"

	"github.com/brentdax/heroku-certs/internal/challenge"
)

// HTTP01Provider adapts a Deployer to the ACME library's HTTP-01
// provider interface, whose methods carry no context parameter. The
// stored context bounds the validation wait; it is scoped to one
// issuance run.
type HTTP01Provider struct {
	deployer *Deployer
	ctx      context.Context
}

// NewHTTP01Provider wraps the deployer for use with an ACME client.
func NewHTTP01Provider(ctx context.Context, deployer *Deployer) *HTTP01Provider {
	return &HTTP01Provider{deployer: deployer, ctx: ctx}
}

// Present deploys the challenge and blocks until the live site serves
// it, so the ACME server's own validation request cannot race the
// Heroku build.
func (p *HTTP01Provider) Present(domain, token, keyAuth string) error {
	_, err := p.deployer.Perform(p.ctx, []challenge.Challenge{
		{Domain: domain, Token: token, KeyAuth: keyAuth},
	})
	return err
}

// CleanUp is deliberately a no-op: deployed challenge files and git
// history stay in place, and the next deployment clears the challenge
// directory before writing.
func (p *HTTP01Provider) CleanUp(domain, token, keyAuth string) error {
	return nil
}
