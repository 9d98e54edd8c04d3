package common

import (
	"github.com/cockroachdb/errors"

	"github.com/cligram-io/cligram/grammar"
)

// Process exit codes, one per failure category, so scripts wrapping the CLI
// can tell a grammar problem from a parse problem.
const (
	ExitOK = iota
	ExitGenericErr
	ExitGrammarNotFound
	ExitNoMatchingVariant
	ExitUnknownCommandHead
	ExitMalformedInput
)

// ErrGrammarNotFound indicates the grammar source is missing or yielded zero
// usable templates.
var ErrGrammarNotFound = errors.New("grammar source not found or empty")

// CodeFor maps an error to its process exit code.
func CodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrGrammarNotFound):
		return ExitGrammarNotFound
	case errors.Is(err, grammar.ErrNoMatchingVariant):
		return ExitNoMatchingVariant
	case errors.Is(err, grammar.ErrUnknownCommandHead):
		return ExitUnknownCommandHead
	case errors.Is(err, grammar.ErrMalformedInput):
		return ExitMalformedInput
	default:
		return ExitGenericErr
	}
}
