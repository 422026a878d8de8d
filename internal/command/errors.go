package command

import (
	"fmt"
	"strings"
)

// ProcessError reports a subprocess that exited non-zero. It carries
// the argument vector that ran and the exit status, so callers can
// branch on the status without re-parsing output.
type ProcessError struct {
	Args     []string
	ExitCode int
	Output   []byte
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	return fmt.Sprintf("command %q failed with exit status %d", strings.Join(e.Args, " "), e.ExitCode)
}

// NoSuchRemoteError is a ProcessError remapped for commands that fail
// because a named remote is not configured. The remote name comes from
// the offending argument.
type NoSuchRemoteError struct {
	*ProcessError
	Remote string
}

// Error implements the error interface.
func (e *NoSuchRemoteError) Error() string {
	return "Remote " + e.Remote + " does not exist."
}

// Unwrap exposes the underlying ProcessError.
func (e *NoSuchRemoteError) Unwrap() error {
	return e.ProcessError
}
