package common

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/cligram-io/cligram/grammar"
)

func TestCodeFor(t *testing.T) {
	assert.Equal(t, ExitOK, CodeFor(nil))
	assert.Equal(t, ExitGrammarNotFound, CodeFor(errors.Wrap(ErrGrammarNotFound, "ctx")))
	assert.Equal(t, ExitNoMatchingVariant, CodeFor(&grammar.NoMatchError{Verb: "add", Object: "rcp"}))
	assert.Equal(t, ExitUnknownCommandHead, CodeFor(errors.Wrap(grammar.ErrUnknownCommandHead, "foo bar")))
	assert.Equal(t, ExitMalformedInput, CodeFor(grammar.ErrMalformedInput))
	assert.Equal(t, ExitGenericErr, CodeFor(errors.New("boom")))
}
