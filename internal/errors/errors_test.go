package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestPlayError(t *testing.T) {
	err := New(ErrCodeSessionNotFound, "no session")
	if err.Code != ErrCodeSessionNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSessionNotFound, err.Code)
	}

	cause := fmt.Errorf("disk full")
	wrapped := Wrap(cause, ErrCodeSessionWrite, "write failed")
	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeSessionWrite) {
		t.Error("Is should return true for matching code")
	}
	if Is(wrapped, ErrCodeSessionCorrupt) {
		t.Error("Is should return false for non-matching code")
	}

	outer := fmt.Errorf("startup: %w", wrapped)
	if GetCode(outer) != ErrCodeSessionWrite {
		t.Errorf("GetCode should unwrap fmt wrapping, got %q", GetCode(outer))
	}
	if Is(nil, ErrCodeSessionWrite) {
		t.Error("Is(nil) should be false")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := InvalidTransition("Disconnected", "Connected")
	if err.Code != ErrCodeInvalidTransition {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidTransition, err.Code)
	}
	if err.Details["from"] != "Disconnected" || err.Details["to"] != "Connected" {
		t.Error("InvalidTransition should include from/to details")
	}

	err = IndexOutOfRange(4, 2)
	if err.Details["index"] != 4 {
		t.Error("IndexOutOfRange should include index detail")
	}

	err = ServicePanic("lastfm", "NewTrack", "boom")
	if err.Details["service"] != "lastfm" {
		t.Error("ServicePanic should include service detail")
	}
}

func TestPlayErrorToJSON(t *testing.T) {
	err := Wrap(fmt.Errorf("tea: program killed"), ErrCodeInternal, "player loop failed").
		WithDetail("op", "run")

	out := err.ToJSON()
	for _, want := range []string{`"code": "INTERNAL_ERROR"`, `"message": "player loop failed"`, `"op": "run"`} {
		if !strings.Contains(out, want) {
			t.Errorf("ToJSON() = %s, missing %s", out, want)
		}
	}
}
