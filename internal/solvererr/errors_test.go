package solvererr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsFatalOnlyForInvariant(t *testing.T) {
	cases := []struct {
		err   error
		fatal bool
	}{
		{NewParseError("bad token", nil), false},
		{NewTimeout("too slow"), false},
		{NewNotFound("exhausted"), false},
		{NewInvariant("dangling fingerprint"), true},
	}
	for _, c := range cases {
		if got := IsFatal(c.err); got != c.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", c.err, got, c.fatal)
		}
	}
}

func TestIsFatalUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("request 7: %w", NewInvariant("dangling fingerprint"))
	if !IsFatal(wrapped) {
		t.Fatalf("expected wrapped invariant error to be fatal")
	}
	if !errors.Is(wrapped, wrapped) {
		t.Fatalf("sanity check failed")
	}
}
