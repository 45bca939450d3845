// Package apperr defines the closed set of failure kinds that calculator and
// explainer operations can produce. Handlers render them inline; none of them
// terminate the process.
package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates user-facing failure outcomes.
type Kind int

const (
	DivisionByZero Kind = iota + 1
	UnknownOperation
	ProviderUnavailable
	ProviderError
	NoPriorCalculation
	EmptyQuestion
)

var kindNames = map[Kind]string{
	DivisionByZero:      "division_by_zero",
	UnknownOperation:    "unknown_operation",
	ProviderUnavailable: "provider_unavailable",
	ProviderError:       "provider_error",
	NoPriorCalculation:  "no_prior_calculation",
	EmptyQuestion:       "empty_question",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsNotice reports whether the kind is a validation outcome that the UI shows
// as a notice rather than an error.
func (k Kind) IsNotice() bool {
	return k == NoPriorCalculation || k == EmptyQuestion
}

// Error is a failure of a known kind. Err, when set, is the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Sentinels for errors.Is. Matching is by kind only.
var (
	ErrDivisionByZero      = &Error{Kind: DivisionByZero, Msg: "cannot divide by zero"}
	ErrUnknownOperation    = &Error{Kind: UnknownOperation, Msg: "unknown operation"}
	ErrProviderUnavailable = &Error{Kind: ProviderUnavailable, Msg: "AI provider is not configured"}
	ErrProviderError       = &Error{Kind: ProviderError, Msg: "AI provider request failed"}
	ErrNoPriorCalculation  = &Error{Kind: NoPriorCalculation, Msg: "Perform a calculation first."}
	ErrEmptyQuestion       = &Error{Kind: EmptyQuestion, Msg: "Please type a question."}
)

// New returns an error of the given kind.
func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the kind of err. ok is false for errors outside the taxonomy.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
