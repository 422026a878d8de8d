package command

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/brentdax/heroku-certs/internal/logger"
)

func TestRunnerRun(t *testing.T) {
	t.Run("successful command returns output", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("main\n"), nil
			},
		}
		runner := NewRunner(WithExecutor(mock), WithGeteuid(func() int { return 1000 }))

		out, err := runner.Run(New("git", "symbolic-ref", "--short", "-q", "HEAD"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "main\n" {
			t.Errorf("expected 'main\\n', got %q", out)
		}
		if len(mock.Calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(mock.Calls))
		}
		if mock.Calls[0].Name != "git" {
			t.Errorf("expected 'git', got %q", mock.Calls[0].Name)
		}
	})

	t.Run("non-zero exit becomes ProcessError", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("fatal: oops"), &FakeExitError{Code: 128}
			},
		}
		runner := NewRunner(WithExecutor(mock), WithGeteuid(func() int { return 1000 }))

		_, err := runner.Run(New("git", "push", "heroku"))
		var perr *ProcessError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ProcessError, got %T: %v", err, err)
		}
		if perr.ExitCode != 128 {
			t.Errorf("expected exit code 128, got %d", perr.ExitCode)
		}
		if len(perr.Args) != 3 || perr.Args[0] != "git" {
			t.Errorf("argument vector not preserved: %v", perr.Args)
		}
		if string(perr.Output) != "fatal: oops" {
			t.Errorf("output not preserved: %q", perr.Output)
		}
	})

	t.Run("remapped exit becomes NoSuchRemoteError", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, &FakeExitError{Code: 2}
			},
		}
		runner := NewRunner(WithExecutor(mock), WithGeteuid(func() int { return 1000 }))

		inv := New("heroku", "apps:info", "--remote", "nope").
			OnExit(2, func(perr *ProcessError) error {
				return &NoSuchRemoteError{ProcessError: perr, Remote: perr.Args[len(perr.Args)-1]}
			})
		_, err := runner.Run(inv)

		var nsr *NoSuchRemoteError
		if !errors.As(err, &nsr) {
			t.Fatalf("expected *NoSuchRemoteError, got %T: %v", err, err)
		}
		if nsr.Remote != "nope" {
			t.Errorf("expected remote 'nope', got %q", nsr.Remote)
		}
		if nsr.Error() != "Remote nope does not exist." {
			t.Errorf("unexpected message: %q", nsr.Error())
		}
		// The remap must preserve the process failure underneath.
		var perr *ProcessError
		if !errors.As(err, &perr) || perr.ExitCode != 2 {
			t.Error("underlying ProcessError not preserved")
		}
	})

	t.Run("other exits are not remapped", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, &FakeExitError{Code: 1}
			},
		}
		runner := NewRunner(WithExecutor(mock), WithGeteuid(func() int { return 1000 }))

		inv := New("heroku", "version").OnExit(2, func(perr *ProcessError) error {
			return &NoSuchRemoteError{ProcessError: perr, Remote: "x"}
		})
		_, err := runner.Run(inv)

		var nsr *NoSuchRemoteError
		if errors.As(err, &nsr) {
			t.Error("exit 1 should not remap to NoSuchRemoteError")
		}
		var perr *ProcessError
		if !errors.As(err, &perr) || perr.ExitCode != 1 {
			t.Errorf("expected plain ProcessError with exit 1, got %v", err)
		}
	})

	t.Run("dry run executes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetOutput(&buf)
		defer logger.SetOutput(os.Stderr)

		mock := &MockExecutor{}
		runner := NewRunner(WithExecutor(mock), WithGeteuid(func() int { return 1000 }))

		out, err := runner.Run(New("git", "push", "heroku").WithDryRun(true))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != nil {
			t.Errorf("expected no output, got %q", out)
		}
		if len(mock.Calls) != 0 {
			t.Errorf("expected no executions, got %d", len(mock.Calls))
		}
		if !strings.Contains(buf.String(), "Would run: $ git push heroku") {
			t.Errorf("dry run not logged: %q", buf.String())
		}
	})
}

func TestRunnerRewrap(t *testing.T) {
	tests := []struct {
		name     string
		euid     int
		sudoUser string
		wantArgs []string
	}{
		{
			name:     "root with sudo user rewraps",
			euid:     0,
			sudoUser: "deploy",
			wantArgs: []string{"sudo", "-u", "deploy", "git", "add", "public"},
		},
		{
			name:     "root without sudo user runs directly",
			euid:     0,
			sudoUser: "",
			wantArgs: []string{"git", "add", "public"},
		},
		{
			name:     "unprivileged user runs directly",
			euid:     1000,
			sudoUser: "deploy",
			wantArgs: []string{"git", "add", "public"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockExecutor{}
			runner := NewRunner(
				WithExecutor(mock),
				WithSudoUser(tt.sudoUser),
				WithGeteuid(func() int { return tt.euid }),
			)

			if _, err := runner.Run(New("git", "add", "public")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mock.Calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.Calls))
			}
			got := append([]string{mock.Calls[0].Name}, mock.Calls[0].Args...)
			if len(got) != len(tt.wantArgs) {
				t.Fatalf("expected %v, got %v", tt.wantArgs, got)
			}
			for i := range got {
				if got[i] != tt.wantArgs[i] {
					t.Fatalf("expected %v, got %v", tt.wantArgs, got)
				}
			}
		})
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"git", "git"},
		{"", "''"},
		{"two words", "'two words'"},
		{"it's", `'it'\''s'`},
		{"a=b", "'a=b'"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
