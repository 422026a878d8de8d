package config

import (
	"github.com/caarlos0/env/v11"
)

// Env holds the environment values the tool consumes. It is parsed
// once at startup and passed explicitly to the components that need
// each value, so no package reads process state ambiently.
type Env struct {
	// SudoUser is the original invoking user when the tool runs under
	// sudo. Subprocesses are re-wrapped back to this identity.
	SudoUser string `env:"SUDO_USER"`

	// HerokuAPIKey authenticates Platform API calls directly; when
	// empty the token is fetched with "heroku auth:token".
	HerokuAPIKey string `env:"HEROKU_API_KEY"`

	// Certbot manual-hook variables; used as the challenge source when
	// heroku-certs deploy runs without explicit challenge flags.
	CertbotDomain     string `env:"CERTBOT_DOMAIN"`
	CertbotToken      string `env:"CERTBOT_TOKEN"`
	CertbotValidation string `env:"CERTBOT_VALIDATION"`
}

// LoadEnv parses the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
