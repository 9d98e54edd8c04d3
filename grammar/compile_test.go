package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileStepLayout(t *testing.T) {
	policy := DefaultPolicy()

	m, err := Compile("0001_add_syslog", "add", "syslog", "host <ip> <port>", policy)
	require.NoError(t, err)

	tokens, err := Tokenize("host <ip> <port>")
	require.NoError(t, err)

	// verb and object prepend two literal gates to the template steps
	assert.Len(t, m.Steps, len(tokens)+2)
	assert.Equal(t, StepLiteral, m.Steps[0].Kind)
	assert.Equal(t, "add", m.Steps[0].Word)
	assert.Equal(t, StepLiteral, m.Steps[1].Kind)
	assert.Equal(t, "syslog", m.Steps[1].Word)

	assert.Equal(t, "host", m.Padding)
	assert.Equal(t, "add syslog host <ip> <port>", m.Rule())
	assert.Equal(t, "0001_add_syslog", m.RowID)
}

func TestCompileKeyResolution(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("duplicate names get numeric suffixes", func(t *testing.T) {
		m, err := Compile("r", "set", "acl", "<x> <x> <x>", policy)
		require.NoError(t, err)
		keys := captureKeys(m)
		assert.Equal(t, []string{"x", "x_1", "x_2"}, keys)
	})

	t.Run("non-word characters collapse to underscore", func(t *testing.T) {
		m, err := Compile("r", "set", "port", "<port-number> <a b>", policy)
		require.NoError(t, err)
		assert.Equal(t, []string{"port_number", "a_b"}, captureKeys(m))
	})

	t.Run("digit leading name gets prefix", func(t *testing.T) {
		m, err := Compile("r", "set", "port", "<2nd>", policy)
		require.NoError(t, err)
		assert.Equal(t, []string{"arg_2nd"}, captureKeys(m))
	})

	t.Run("empty name gets prefix", func(t *testing.T) {
		m, err := Compile("r", "set", "port", "<>", policy)
		require.NoError(t, err)
		assert.Equal(t, []string{"arg_"}, captureKeys(m))
	})

	t.Run("inline enumeration keyed by first choice", func(t *testing.T) {
		m, err := Compile("r", "set", "link-group", "<id> protect-access-mode <obypass|ebypass|shutdown|pass>", policy)
		require.NoError(t, err)
		require.Len(t, m.Captures, 2)
		assert.Equal(t, "obypass", m.Captures[1].Key)
		assert.Equal(t, []string{"obypass", "ebypass", "shutdown", "pass"}, m.Captures[1].Choices)
	})

	t.Run("anonymous alternatives numbered per matcher", func(t *testing.T) {
		m, err := Compile("r", "set", "lldp", "tx {enable|disable} rx {on|off}", policy)
		require.NoError(t, err)
		assert.Equal(t, []string{"keyword_1", "keyword_2"}, captureKeys(m))
	})

	t.Run("optional interior captures join the table", func(t *testing.T) {
		m, err := Compile("r", "set", "port", "<id> [vlan <vid>]", policy)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "vid"}, captureKeys(m))
	})
}

func TestCompileFailures(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("tokenizer failure carries row context", func(t *testing.T) {
		_, err := Compile("0007_set_port", "set", "port", "[a [b]]", policy)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedTemplate)

		var compileErr *CompileError
		require.ErrorAs(t, err, &compileErr)
		assert.Equal(t, "0007_set_port", compileErr.RowID)
		assert.Equal(t, "[a [b]]", compileErr.Template)
	})

	t.Run("empty choice set rejected", func(t *testing.T) {
		_, err := Compile("r", "set", "port", "{}", policy)
		assert.ErrorIs(t, err, ErrMalformedTemplate)

		_, err = Compile("r", "set", "port", "<|>", policy)
		assert.ErrorIs(t, err, ErrMalformedTemplate)
	})
}

func TestCompilePolicyKnobs(t *testing.T) {
	policy := Policy{AnonymousStem: "kw", SanitizePrefix: "p_"}

	m, err := Compile("r", "set", "port", "{a|b} <9x>", policy)
	require.NoError(t, err)
	assert.Equal(t, []string{"kw_1", "p_9x"}, captureKeys(m))
}

func captureKeys(m *Matcher) []string {
	keys := make([]string, 0, len(m.Captures))
	for _, c := range m.Captures {
		keys = append(keys, c.Key)
	}
	return keys
}
