package heroku

import (
	"strings"

	"github.com/brentdax/heroku-certs/internal/command"
)

// noSuchRemoteExit is the status the Heroku CLI exits with when asked
// about a git remote that is not configured.
const noSuchRemoteExit = 2

// CLI wraps the Heroku toolbelt for the operations that have no
// direct API equivalent: resolving the auth token and mapping a git
// remote to an app name.
type CLI struct {
	runner *command.Runner
}

// NewCLI creates a toolbelt wrapper on the given runner.
func NewCLI(runner *command.Runner) *CLI {
	return &CLI{runner: runner}
}

func (c *CLI) heroku(args ...string) command.Invocation {
	return command.New("heroku", args...).
		OnExit(noSuchRemoteExit, func(perr *command.ProcessError) error {
			return &command.NoSuchRemoteError{
				ProcessError: perr,
				Remote:       perr.Args[len(perr.Args)-1],
			}
		})
}

// IsInstalled reports whether the heroku executable is on the PATH.
func (c *CLI) IsInstalled() bool {
	_, err := c.runner.LookPath("heroku")
	return err == nil
}

// Version returns the toolbelt's version string.
func (c *CLI) Version() (string, error) {
	out, err := c.runner.Run(c.heroku("version"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// AuthToken returns the API token of the logged-in toolbelt user.
func (c *CLI) AuthToken() (string, error) {
	out, err := c.runner.Run(c.heroku("auth:token"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// AppName resolves the app attached to the given git remote by parsing
// the "=== <name>" banner of "heroku apps:info". An unknown remote
// surfaces as *command.NoSuchRemoteError.
func (c *CLI) AppName(remote string) (string, error) {
	out, err := c.runner.Run(c.heroku("apps:info", "--remote", remote))
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "=== ") {
			return strings.TrimSpace(line[4:]), nil
		}
	}
	return "", &appInfoParseError{remote: remote}
}

type appInfoParseError struct {
	remote string
}

func (e *appInfoParseError) Error() string {
	return "could not find an app name in 'heroku apps:info --remote " + e.remote + "' output"
}
