package grammar

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the failure categories surfaced by template compilation
// and command matching. Callers classify with errors.Is.
var (
	// ErrMalformedTemplate indicates a grammar authoring error detected while
	// tokenizing a template (unbalanced brackets, unsupported nesting, ...).
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrMalformedInput indicates the command line has fewer than two words.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownCommandHead indicates no (verb, object) bucket exists for the
	// first two input words. Distinct from ErrNoMatchingVariant: this one
	// usually means a typo in the command head.
	ErrUnknownCommandHead = errors.New("unknown command head")
	// ErrNoMatchingVariant indicates the bucket exists but no candidate
	// template consumed the full input.
	ErrNoMatchingVariant = errors.New("no matching variant")
)

// CompileError wraps a tokenizer or constraint failure with the grammar row
// context so authors can locate the offending sheet row.
type CompileError struct {
	RowID    string
	Template string
	cause    error
}

// Error implements error.
func (e *CompileError) Error() string {
	return fmt.Sprintf("grammar row %s: cannot compile template %q: %s", e.RowID, e.Template, e.cause.Error())
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *CompileError) Unwrap() error { return e.cause }

// NoMatchError reports that the (verb, object) bucket exists but none of its
// variants accepted the input. Attempted keeps the rules in trial order so the
// caller can show which templates nearly matched.
type NoMatchError struct {
	Verb      string
	Object    string
	Attempted []string
}

// Error implements error.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no matching variant for %q %q, %d template(s) attempted", e.Verb, e.Object, len(e.Attempted))
}

// Unwrap makes errors.Is(err, ErrNoMatchingVariant) hold.
func (e *NoMatchError) Unwrap() error { return ErrNoMatchingVariant }
