package command

import (
	"errors"
	"os"
	"strings"

	"github.com/brentdax/heroku-certs/internal/logger"
)

// Invocation is one command line, constructed immediately before
// execution. The zero value is not usable; build one with New.
type Invocation struct {
	// Args is the full argument vector, program name first.
	Args []string

	// DryRun suppresses execution; the command line is only logged.
	DryRun bool

	remaps map[int]func(*ProcessError) error
}

// New builds an Invocation for the named program.
func New(name string, args ...string) Invocation {
	return Invocation{Args: append([]string{name}, args...)}
}

// WithDryRun returns a copy of the invocation with the dry-run flag set.
func (inv Invocation) WithDryRun(dryRun bool) Invocation {
	inv.DryRun = dryRun
	return inv
}

// OnExit returns a copy of the invocation that remaps the given exit
// status to a more specific error. The wrap function receives the
// *ProcessError that would otherwise have been returned.
func (inv Invocation) OnExit(code int, wrap func(*ProcessError) error) Invocation {
	remaps := make(map[int]func(*ProcessError) error, len(inv.remaps)+1)
	for k, v := range inv.remaps {
		remaps[k] = v
	}
	remaps[code] = wrap
	inv.remaps = remaps
	return inv
}

// Runner executes invocations under a fixed policy: which Executor
// spawns processes and which user identity root-run commands are
// re-wrapped to.
type Runner struct {
	exec     Executor
	sudoUser string
	geteuid  func() int
}

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor replaces the process executor (used by tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) { r.exec = exec }
}

// WithSudoUser sets the unprivileged identity commands are re-wrapped
// to when the runner itself is root. Empty disables re-wrapping.
func WithSudoUser(user string) Option {
	return func(r *Runner) { r.sudoUser = user }
}

// WithGeteuid replaces the effective-uid lookup (used by tests).
func WithGeteuid(fn func() int) Option {
	return func(r *Runner) { r.geteuid = fn }
}

// NewRunner creates a Runner backed by the system executor.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		exec:    NewSystemExecutor(),
		geteuid: os.Geteuid,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath reports where the named program would be found, if anywhere.
func (r *Runner) LookPath(file string) (string, error) {
	return r.exec.LookPath(file)
}

// Run executes the invocation and returns its combined output.
//
// The argument vector is re-wrapped through sudo at this point, never
// earlier, so a retried invocation picks up the current identity. In
// dry-run mode the command line is logged at warn level and nothing
// executes. A non-zero exit becomes a *ProcessError, or whatever the
// invocation's OnExit remapping produces for that status.
func (r *Runner) Run(inv Invocation) ([]byte, error) {
	args := r.rewrap(inv.Args)

	if inv.DryRun {
		logger.Warn("Would run: %s", r.render(args))
		return nil, nil
	}
	logger.Debug("Running: %s", r.render(args))

	out, err := r.exec.Execute(args[0], args[1:]...)
	if err == nil {
		return out, nil
	}

	code, ok := exitStatus(err)
	if !ok {
		// The command never ran (not installed, permission, ...).
		return out, err
	}

	perr := &ProcessError{Args: args, ExitCode: code, Output: out}
	if wrap, found := inv.remaps[code]; found {
		return out, wrap(perr)
	}
	return out, perr
}

// rewrap prepends "sudo -u <user>" when running as root with a known
// original user, so subprocesses act as that user instead.
func (r *Runner) rewrap(args []string) []string {
	if r.sudoUser == "" || r.geteuid() != 0 {
		return args
	}
	return append([]string{"sudo", "-u", r.sudoUser}, args...)
}

// render returns a shell-quoted command line behind a $ or # prompt.
func (r *Runner) render(args []string) string {
	prompt := "$ "
	if r.geteuid() == 0 {
		prompt = "# "
	}

	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = shellQuote(arg)
	}
	return prompt + strings.Join(quoted, " ")
}

// shellQuote renders a single argument safely for display.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$&|;<>()*?[]#~=%!{}`") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// exitStatus extracts an exit status from an execution error.
// *exec.ExitError and FakeExitError both satisfy the interface.
func exitStatus(err error) (int, bool) {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		if code := coder.ExitCode(); code >= 0 {
			return code, true
		}
	}
	return 0, false
}
