// Package command runs external tools (git, the Heroku CLI) as
// subprocesses with dry-run support and privilege re-wrapping.
//
// A Runner holds the execution policy: the Executor that actually
// spawns processes, and the identity of the original invoking user.
// When the process is running as root and that identity is known
// (certbot is typically invoked through sudo), every command is
// re-wrapped as "sudo -u <user> ..." so that files it creates stay
// readable by the unprivileged user who owns the working copy. The
// identity is threaded in explicitly by the CLI; this package never
// reads the environment itself.
//
// An Invocation is built immediately before execution and describes
// one command line:
//
//	inv := command.New("git", "push", "heroku").WithDryRun(dryRun)
//	out, err := runner.Run(inv)
//
// Non-zero exits surface as *ProcessError carrying the argument
// vector, exit status, and combined output. A specific exit status can
// be remapped to a more descriptive error with OnExit; the Heroku CLI
// uses status 2 for "no such remote", which becomes
// *NoSuchRemoteError.
//
// # Testing
//
// Like the rest of the tool, subprocess work is tested through the
// Executor interface:
//
//	mock := &command.MockExecutor{}
//	runner := command.NewRunner(command.WithExecutor(mock))
package command
