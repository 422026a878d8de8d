package heroku

import (
	"errors"
	"testing"

	"github.com/brentdax/heroku-certs/internal/command"
)

func newTestCLI(mock *command.MockExecutor) *CLI {
	runner := command.NewRunner(
		command.WithExecutor(mock),
		command.WithGeteuid(func() int { return 1000 }),
	)
	return NewCLI(runner)
}

func TestAuthToken(t *testing.T) {
	mock := &command.MockExecutor{
		ExecuteFunc: func(name string, args ...string) ([]byte, error) {
			return []byte("01234567-89ab-cdef-0123-456789abcdef\n"), nil
		},
	}
	cli := newTestCLI(mock)

	token, err := cli.AuthToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "01234567-89ab-cdef-0123-456789abcdef" {
		t.Errorf("token not trimmed: %q", token)
	}
	if mock.Calls[0].Name != "heroku" || mock.Calls[0].Args[0] != "auth:token" {
		t.Errorf("unexpected invocation: %+v", mock.Calls[0])
	}
}

func TestAppName(t *testing.T) {
	t.Run("parses banner line", func(t *testing.T) {
		mock := &command.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("=== frozen-citadel-1234\nAddons: heroku-postgresql\nOwner: me@example.com\n"), nil
			},
		}
		cli := newTestCLI(mock)

		app, err := cli.AppName("heroku")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app != "frozen-citadel-1234" {
			t.Errorf("expected 'frozen-citadel-1234', got %q", app)
		}
	})

	t.Run("exit 2 means no such remote", func(t *testing.T) {
		mock := &command.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, &command.FakeExitError{Code: 2}
			},
		}
		cli := newTestCLI(mock)

		_, err := cli.AppName("production")
		var nsr *command.NoSuchRemoteError
		if !errors.As(err, &nsr) {
			t.Fatalf("expected *NoSuchRemoteError, got %T: %v", err, err)
		}
		if nsr.Remote != "production" {
			t.Errorf("expected remote 'production', got %q", nsr.Remote)
		}
	})

	t.Run("missing banner fails", func(t *testing.T) {
		mock := &command.MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("no banner here\n"), nil
			},
		}
		cli := newTestCLI(mock)

		if _, err := cli.AppName("heroku"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestIsInstalled(t *testing.T) {
	t.Run("found on path", func(t *testing.T) {
		cli := newTestCLI(&command.MockExecutor{})
		if !cli.IsInstalled() {
			t.Error("expected installed")
		}
	})

	t.Run("missing from path", func(t *testing.T) {
		mock := &command.MockExecutor{
			LookPathFunc: func(file string) (string, error) {
				return "", errors.New("not found")
			},
		}
		cli := newTestCLI(mock)
		if cli.IsInstalled() {
			t.Error("expected not installed")
		}
	})
}
