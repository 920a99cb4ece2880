// Package solvererr carries the solver's four error kinds as a single
// typed, code-bearing error. Every kind
// except Invariant is swallowed at the solver loop's request boundary
// into an empty response line; Invariant is logged and aborts the
// process, since it reflects a bug rather than bad input.
//
// SPDX-License-Identifier: Apache-2.0
package solvererr

import (
	"errors"
	"fmt"
)

// Kind classifies a solver error.
type Kind int

const (
	KindParseError Kind = iota
	KindTimeout
	KindNotFound
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "parse_error"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindInvariant:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// Error is a structured solver error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s[%s]: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewParseError wraps a collaborator's surface-syntax parse failure.
func NewParseError(message string, cause error) *Error {
	return &Error{Kind: KindParseError, Code: CodeParseError, Message: message, Err: cause}
}

// NewTimeout reports that a search exceeded its time budget.
func NewTimeout(message string) *Error {
	return &Error{Kind: KindTimeout, Code: CodeTimeout, Message: message}
}

// NewNotFound reports that enumeration exhausted max_size with no match.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

// NewInvariant reports a broken internal invariant: a bug, not bad input.
func NewInvariant(message string) *Error {
	return &Error{Kind: KindInvariant, Code: CodeInvariantViolation, Message: message}
}

// IsFatal reports whether err should abort the process rather than be
// folded into an empty response line.
func IsFatal(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == KindInvariant
}
