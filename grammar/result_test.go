package grammar

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cligram-io/cligram/framework"
)

func TestMatchResultMarshalJSONOrder(t *testing.T) {
	result := &MatchResult{
		Verb:   "add",
		Object: "syslog",
		Args: []Arg{
			{Key: "padding", Value: "host"},
			{Key: "ip", Value: "10.10.11.183"},
			{Key: "port", Value: "514"},
		},
		Raw:   "add syslog host 10.10.11.183 514",
		Rule:  "add syslog host <ip> <port>",
		RowID: "0001_add_syslog",
	}

	bs, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"verb":"add","object":"syslog",`+
			`"args":{"padding":"host","ip":"10.10.11.183","port":"514"},`+
			`"raw":"add syslog host 10.10.11.183 514",`+
			`"rule":"add syslog host <ip> <port>",`+
			`"row":"0001_add_syslog"}`,
		string(bs))
}

func TestMatchResultMarshalJSONKeepsAngleBrackets(t *testing.T) {
	result := &MatchResult{
		Verb:   "add",
		Object: "syslog",
		Raw:    "add syslog host 10.0.0.1",
		Rule:   "add syslog host <ip>",
	}

	bs, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"rule":"add syslog host <ip>"`)
	assert.NotContains(t, string(bs), `\u003c`)
	assert.NotContains(t, string(bs), `\u003e`)
}

func TestMatchResultPrintAs(t *testing.T) {
	policy := DefaultPolicy()
	table := buildTable(t, [][3]string{
		{"add", "syslog", "host <ip> <port>"},
	})
	result, err := Match("add syslog host 10.0.0.1 514", table, policy)
	require.NoError(t, err)

	t.Run("line", func(t *testing.T) {
		assert.Equal(t,
			"verb=add object=syslog padding=host ip=10.0.0.1 port=514",
			result.PrintAs(framework.FormatLine))
	})

	t.Run("table", func(t *testing.T) {
		rendered := result.PrintAs(framework.FormatTable)
		assert.Contains(t, rendered, "args.ip")
		assert.Contains(t, rendered, "10.0.0.1")
	})

	t.Run("default is json", func(t *testing.T) {
		rendered := result.PrintAs(framework.FormatDefault)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
		assert.Equal(t, "add", decoded["verb"])
	})
}

func TestMatchResultReassemble(t *testing.T) {
	policy := DefaultPolicy()
	table := buildTable(t, [][3]string{
		{"add", "syslog", "host <ip> <port>"},
		{"bind", "link-group", "<id> protect-channel <slot> <channel>"},
		{"set", "port", "<id> [vlan <vid>] enable"},
		{"set", "lldp", "[fast] enable"},
	})

	t.Run("literal first", func(t *testing.T) {
		result, err := Match("add syslog host 10.10.11.183 514", table, policy)
		require.NoError(t, err)
		line, ok := result.Reassemble()
		require.True(t, ok)
		assert.Equal(t, "add syslog host 10.10.11.183 514", line)
	})

	t.Run("interleaved literal keeps position", func(t *testing.T) {
		result, err := Match("bind link-group 1 protect-channel 4 0", table, policy)
		require.NoError(t, err)
		line, ok := result.Reassemble()
		require.True(t, ok)
		assert.Equal(t, "bind link-group 1 protect-channel 4 0", line)
	})

	t.Run("optional with capture reassembles both ways", func(t *testing.T) {
		for _, input := range []string{
			"set port 3 vlan 100 enable",
			"set port 3 enable",
		} {
			result, err := Match(input, table, policy)
			require.NoError(t, err)
			line, ok := result.Reassemble()
			require.True(t, ok)
			assert.True(t, strings.EqualFold(input, line))
		}
	})

	t.Run("capture-free optional is ambiguous", func(t *testing.T) {
		result, err := Match("set lldp enable", table, policy)
		require.NoError(t, err)
		_, ok := result.Reassemble()
		assert.False(t, ok)
	})
}
