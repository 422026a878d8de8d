// Package challenge models HTTP-01 challenges and verifies them
// against the live site. The filesystem layout and URL path follow the
// ACME HTTP-01 convention, taken from the ACME library rather than
// restated here.
package challenge

import (
	"strings"

	"github.com/go-acme/lego/v4/challenge/http01"
)

// Challenge is one pending HTTP-01 challenge: a domain to prove
// control of, the token naming the challenge file, and the key
// authorization the file must contain. Immutable once issued by the
// ACME layer.
type Challenge struct {
	Domain  string
	Token   string
	KeyAuth string
}

// Path returns the URL path the challenge must be served under.
func (c Challenge) Path() string {
	return http01.ChallengePath(c.Token)
}

// Validation returns the exact bytes the challenge file must contain.
func (c Challenge) Validation() []byte {
	return []byte(c.KeyAuth)
}

// Result pairs a challenge with its observed validation outcome.
type Result struct {
	Challenge Challenge
	Validated bool
}

// URIRootPath is the well-known directory challenges live under,
// relative to the site root: ".well-known/acme-challenge", without
// leading or trailing slashes.
func URIRootPath() string {
	return strings.Trim(http01.ChallengePath(""), "/")
}
