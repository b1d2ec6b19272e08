package apierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromResponse_ServerMessage(t *testing.T) {
	t.Parallel()
	e := FromResponse("login", 401, []byte(`{"success":false,"message":"Invalid credentials"}`))
	if e.Kind != KindServer || e.StatusCode != 401 {
		t.Fatalf("unexpected error: %+v", e)
	}
	if e.Message != "Invalid credentials" {
		t.Fatalf("message: %q", e.Message)
	}
	if DisplayMessage(e, "fallback") != "Invalid credentials" {
		t.Fatalf("DisplayMessage should prefer the server message")
	}
}

func TestFromResponse_NonJSONBody(t *testing.T) {
	t.Parallel()
	e := FromResponse("list startups", 502, []byte("<html>bad gateway</html>"))
	if e.Message != "" {
		t.Fatalf("expected no message, got %q", e.Message)
	}
	if DisplayMessage(e, "Failed to fetch startups") != "Failed to fetch startups" {
		t.Fatalf("DisplayMessage should fall back")
	}
}

func TestDisplayMessage_PlainError(t *testing.T) {
	t.Parallel()
	if DisplayMessage(fmt.Errorf("boom"), "generic") != "generic" {
		t.Fatalf("plain errors should use the fallback")
	}
}

func TestRecoverable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{FromTransport("op", errors.New("refused")), true},
		{FromResponse("op", 500, nil), true},
		{FromResponse("op", 503, nil), true},
		{FromResponse("op", 429, nil), true},
		{FromResponse("op", 408, nil), true},
		{FromResponse("op", 401, nil), false},
		{FromResponse("op", 404, nil), false},
		{Validation("op", "missing id"), false},
		{errors.New("opaque"), true},
	}
	for _, c := range cases {
		if got := Recoverable(c.err); got != c.want {
			t.Fatalf("Recoverable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestIsKindAndUnwrap(t *testing.T) {
	t.Parallel()
	base := errors.New("conn reset")
	e := FromTransport("restore session", base)
	wrapped := fmt.Errorf("outer: %w", e)
	if !IsKind(wrapped, KindTransport) {
		t.Fatalf("expected transport kind through wrapping")
	}
	if IsKind(wrapped, KindServer) {
		t.Fatalf("unexpected server kind")
	}
	if !errors.Is(wrapped, base) {
		t.Fatalf("expected unwrap chain to reach the base error")
	}
}
