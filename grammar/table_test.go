package grammar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRegisterLookup(t *testing.T) {
	table := NewTable()
	policy := DefaultPolicy()

	first, err := Compile("0001_add_syslog", "add", "syslog", "host <ip>", policy)
	require.NoError(t, err)
	second, err := Compile("0002_add_syslog", "add", "syslog", "host <ip> <port>", policy)
	require.NoError(t, err)

	require.NoError(t, table.Register(first))
	require.NoError(t, table.Register(second))

	t.Run("bucket preserves insertion order", func(t *testing.T) {
		bucket := table.Lookup("add", "syslog")
		require.Len(t, bucket, 2)
		assert.Same(t, first, bucket[0])
		assert.Same(t, second, bucket[1])
	})

	t.Run("lookup is case insensitive", func(t *testing.T) {
		assert.Len(t, table.Lookup("ADD", "Syslog"), 2)
	})

	t.Run("unknown head returns nil", func(t *testing.T) {
		assert.Nil(t, table.Lookup("foo", "bar"))
	})

	assert.Equal(t, 2, table.Len())
}

func TestTableSeal(t *testing.T) {
	table := NewTable()
	policy := DefaultPolicy()

	m, err := Compile("r", "add", "syslog", "host <ip>", policy)
	require.NoError(t, err)
	require.NoError(t, table.Register(m))

	table.Seal()
	assert.Error(t, table.Register(m))
	assert.Len(t, table.Lookup("add", "syslog"), 1)
}

func TestTableVerbsObjects(t *testing.T) {
	table := NewTable()
	policy := DefaultPolicy()

	for i, head := range [][2]string{
		{"set", "port"},
		{"add", "syslog"},
		{"set", "lldp"},
	} {
		m, err := Compile(fmt.Sprintf("r%d", i), head[0], head[1], "<x>", policy)
		require.NoError(t, err)
		require.NoError(t, table.Register(m))
	}

	assert.Equal(t, []string{"add", "set"}, table.Verbs())
	assert.Equal(t, []string{"lldp", "port"}, table.Objects("set"))
	assert.Empty(t, table.Objects("remove"))
}
