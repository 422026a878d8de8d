// Package errors provides standardized error types for heroku-certs.
//
// The error taxonomy mirrors the failure modes of the deployment
// workflow:
//
//   - PRECONDITION: the working copy or configuration is not in a
//     state where deployment may begin (missing challenge root, wrong
//     branch, unknown remote, out-of-date checkout). Always fatal,
//     never retried, and raised before anything is written.
//   - PROCESS: a subprocess exited non-zero in a way that has no more
//     specific classification (see the command package for the typed
//     process errors themselves).
//   - REMOTE_STATE: the remote platform is in a state the tool refuses
//     to act on, such as an SSL endpoint count other than one.
//   - CONFIG, SSL, PERMISSION, INTERNAL: supporting categories for the
//     CLI surface.
//
// Use errors.Is for sentinel comparison and errors.As to recover the
// typed error:
//
//	var cerr *errors.CertError
//	if errors.As(err, &cerr) && cerr.Code == errors.ErrCodePrecondition {
//	    // fatal, do not retry
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodePrecondition ErrorCode = "PRECONDITION" // Deploy preconditions not met
	ErrCodeProcess      ErrorCode = "PROCESS"      // Subprocess failed
	ErrCodeRemoteState  ErrorCode = "REMOTE_STATE" // Remote platform in unusable state
	ErrCodeConfig       ErrorCode = "CONFIG"       // Configuration error
	ErrCodeSSL          ErrorCode = "SSL"          // Certificate material error
	ErrCodePermission   ErrorCode = "PERMISSION"   // Permission denied
	ErrCodeInternal     ErrorCode = "INTERNAL"     // Internal/unexpected error
)

// CertError represents a structured error with context about the operation.
type CertError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Hostname involved (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *CertError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("%s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *CertError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *CertError) Is(target error) bool {
	t, ok := target.(*CertError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrHerokuNotInstalled indicates the Heroku CLI cannot be found.
	ErrHerokuNotInstalled = &CertError{Code: ErrCodeConfig, Message: "heroku CLI not installed"}

	// ErrGitNotInstalled indicates git cannot be found.
	ErrGitNotInstalled = &CertError{Code: ErrCodeConfig, Message: "git not installed"}

	// ErrNoChallenges indicates a deploy was requested with nothing to deploy.
	ErrNoChallenges = &CertError{Code: ErrCodeConfig, Message: "no challenges to deploy"}
)

// Precondition creates a fatal precondition error. These abort the
// deployment before any file is written and are never retried.
func Precondition(msg string) error {
	return &CertError{
		Code:    ErrCodePrecondition,
		Message: msg,
	}
}

// Preconditionf creates a precondition error with a formatted message.
func Preconditionf(format string, args ...interface{}) error {
	return Precondition(fmt.Sprintf(format, args...))
}

// RemoteState creates an error for a remote platform state the tool
// refuses to act on.
func RemoteState(msg string) error {
	return &CertError{
		Code:    ErrCodeRemoteState,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &CertError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with hostname context and underlying error.
func WrapDomain(code ErrorCode, domain string, err error) error {
	return &CertError{
		Code:   code,
		Domain: domain,
		Err:    err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
