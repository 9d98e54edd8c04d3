package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperRoundTrip(t *testing.T) {
	dir := t.TempDir()

	h := NewHelper(dir)
	h.AddLog("add syslog host 10.0.0.1 514")
	h.AddLog("  ")
	h.AddLog("add syslog host 10.0.0.1 514") // immediate repeat dropped
	h.AddLog("set port 3 enable")
	h.Close()

	reloaded := NewHelper(dir)
	defer reloaded.Close()

	assert.Equal(t, []string{
		"add syslog host 10.0.0.1 514",
		"set port 3 enable",
	}, reloaded.Commands())

	items := reloaded.List("add syslog")
	require.Len(t, items, 1)
	assert.Equal(t, "add syslog host 10.0.0.1 514", items[0].Cmd)
	assert.Empty(t, reloaded.List("delete"))
}
