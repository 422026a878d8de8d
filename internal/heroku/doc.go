// Package heroku talks to Heroku two ways: through the locally
// installed Heroku CLI (auth token and app discovery, mirroring what
// an operator would type) and through the Platform API over HTTPS
// (domains and SSL endpoints).
//
// The SSL endpoint resource is defined here as a first-class type with
// its own list and update operations; certificate installation
// enforces that the app has exactly one endpoint and refuses to guess
// otherwise.
//
// Reads never cache. The remote platform owns domains and endpoints;
// every call re-fetches.
package heroku
