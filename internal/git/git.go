// Package git wraps the handful of git operations the deployment flow
// needs: branch inspection, remote synchronization checks, and the
// stage/commit/push sequence. All work happens through a
// command.Runner so tests can substitute a mock executor and so the
// sudo re-wrapping policy applies uniformly.
package git

import (
	"errors"
	"strings"

	"github.com/brentdax/heroku-certs/internal/command"
)

// Client runs git against the current working copy.
type Client struct {
	runner *command.Runner
	dryRun bool
}

// NewClient creates a git client. When dryRun is set, write-class
// operations (stage, commit, push) only log; read-class operations
// still execute.
func NewClient(runner *command.Runner, dryRun bool) *Client {
	return &Client{runner: runner, dryRun: dryRun}
}

func (c *Client) git(args ...string) command.Invocation {
	return command.New("git", args...)
}

// CheckedOutBranch returns the name of the currently checked-out
// branch. A detached HEAD makes symbolic-ref exit non-zero, which
// surfaces as a process error.
func (c *Client) CheckedOutBranch() (string, error) {
	out, err := c.runner.Run(c.git("symbolic-ref", "--short", "-q", "HEAD"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// UpdateRemote fetches the remote-tracking refs for the named remote.
// This both validates that the remote exists and makes IsUpToDate
// answer against fresh refs.
func (c *Client) UpdateRemote(remote string) error {
	_, err := c.runner.Run(c.git("remote", "update", remote))
	return err
}

// IsUpToDate reports whether the working copy has no staged difference
// against remote/branch. git diff exits 1 when there is a difference;
// any other non-zero exit is an unexpected failure and propagates.
func (c *Client) IsUpToDate(remote, branch string) (bool, error) {
	_, err := c.runner.Run(c.git("diff", "--staged", "--quiet", remote+"/"+branch))
	if err == nil {
		return true, nil
	}

	var perr *command.ProcessError
	if errors.As(err, &perr) && perr.ExitCode == 1 {
		return false, nil
	}
	return false, err
}

// StageFile stages the given path.
func (c *Client) StageFile(path string) error {
	_, err := c.runner.Run(c.git("add", path).WithDryRun(c.dryRun))
	return err
}

// Commit commits staged changes with the given message.
func (c *Client) Commit(message string) error {
	_, err := c.runner.Run(c.git("commit", "-m", message).WithDryRun(c.dryRun))
	return err
}

// PushToRemote pushes the current branch to the named remote. On
// Heroku this triggers a build and restart of the app.
func (c *Client) PushToRemote(remote string) error {
	_, err := c.runner.Run(c.git("push", remote).WithDryRun(c.dryRun))
	return err
}
