package errors

import (
	"fmt"
	"testing"
)

func TestCertErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *CertError
		want string
	}{
		{
			name: "message only",
			err:  &CertError{Code: ErrCodePrecondition, Message: "The 'public' folder doesn't exist"},
			want: "The 'public' folder doesn't exist",
		},
		{
			name: "domain and message",
			err:  &CertError{Code: ErrCodeSSL, Message: "validation skipped", Domain: "example.com"},
			want: "example.com: validation skipped",
		},
		{
			name: "message and wrapped error",
			err:  &CertError{Code: ErrCodeProcess, Message: "push failed", Err: fmt.Errorf("exit status 1")},
			want: "push failed: exit status 1",
		},
		{
			name: "domain, message, and wrapped error",
			err:  &CertError{Code: ErrCodeSSL, Message: "verify failed", Domain: "example.com", Err: fmt.Errorf("timeout")},
			want: "example.com: verify failed: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCertErrorIs(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		err := Precondition("wrong branch")
		if !Is(err, &CertError{Code: ErrCodePrecondition}) {
			t.Error("expected match on code")
		}
		if Is(err, &CertError{Code: ErrCodeRemoteState}) {
			t.Error("should not match a different code")
		}
	})

	t.Run("sentinel comparison", func(t *testing.T) {
		err := Wrap(ErrCodeConfig, "heroku CLI not installed", nil)
		if !Is(err, ErrHerokuNotInstalled) {
			t.Error("expected sentinel match by code")
		}
	})
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("exit status 2")
	err := Wrap(ErrCodeProcess, "remote update failed", inner)

	var cerr *CertError
	if !As(err, &cerr) {
		t.Fatal("expected *CertError")
	}
	if cerr.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}

func TestWrapDomain(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := WrapDomain(ErrCodeSSL, "www.example.com", inner)

	var cerr *CertError
	if !As(err, &cerr) {
		t.Fatal("expected *CertError")
	}
	if cerr.Domain != "www.example.com" {
		t.Errorf("expected domain preserved, got %q", cerr.Domain)
	}
}
