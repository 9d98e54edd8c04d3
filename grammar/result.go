package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/cligram-io/cligram/framework"
)

// Arg is one captured argument. Args stay in an ordered slice so template
// left-to-right order survives serialization.
type Arg struct {
	Key   string
	Value string
}

// MatchResult is the structured decomposition of one command line. It is
// created fresh per Match call and owned by the caller.
type MatchResult struct {
	Verb   string
	Object string
	// Args holds the captured arguments in step order, with the padding entry
	// first when the matched template has literal words outside brackets.
	Args []Arg
	// Raw is the original input line.
	Raw string
	// Rule is the full syntax of the matched template.
	Rule string
	// RowID identifies the grammar row the matched template came from.
	RowID string

	matcher *Matcher
}

// Get returns the value captured under key.
func (r *MatchResult) Get(key string) (string, bool) {
	for _, arg := range r.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return "", false
}

// ArgMap flattens the arguments into a plain map, losing order. Intended for
// filter-expression environments, not for serialization.
func (r *MatchResult) ArgMap() map[string]string {
	m := make(map[string]string, len(r.Args))
	for _, arg := range r.Args {
		m[arg.Key] = arg.Value
	}
	return m
}

// MarshalJSON emits the ordered mapping contract: verb, object, args (in
// template order), raw, rule, row. encoding/json maps do not preserve
// insertion order, hence the hand-built object.
func (r *MatchResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField(&buf, "verb", r.Verb)
	buf.WriteByte(',')
	writeField(&buf, "object", r.Object)
	buf.WriteString(`,"args":{`)
	for i, arg := range r.Args {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeField(&buf, arg.Key, arg.Value)
	}
	buf.WriteString(`},`)
	writeField(&buf, "raw", r.Raw)
	buf.WriteByte(',')
	writeField(&buf, "rule", r.Rule)
	buf.WriteByte(',')
	writeField(&buf, "row", r.RowID)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key, value string) {
	writeString(buf, key)
	buf.WriteByte(':')
	writeString(buf, value)
}

// writeString encodes s without HTML escaping so template text such as <ip>
// serializes verbatim instead of with unicode escapes.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
}

// Entities implements framework.ResultSet.
func (r *MatchResult) Entities() any {
	return r
}

// PrintAs implements framework.ResultSet.
func (r *MatchResult) PrintAs(format framework.Format) string {
	switch format {
	case framework.FormatTable:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"verb", r.Verb})
		t.AppendRow(table.Row{"object", r.Object})
		for _, arg := range r.Args {
			t.AppendRow(table.Row{"args." + arg.Key, arg.Value})
		}
		t.AppendRow(table.Row{"raw", r.Raw})
		t.AppendRow(table.Row{"rule", r.Rule})
		t.AppendRow(table.Row{"row", r.RowID})
		return t.Render()
	case framework.FormatLine, framework.FormatPlain:
		parts := []string{
			fmt.Sprintf("verb=%s", r.Verb),
			fmt.Sprintf("object=%s", r.Object),
		}
		for _, arg := range r.Args {
			parts = append(parts, fmt.Sprintf("%s=%s", arg.Key, arg.Value))
		}
		return strings.Join(parts, " ")
	default:
		return framework.MarshalJSON(r)
	}
}

// Reassemble reconstructs a command line from the matched template and the
// captured values, for round-trip verification against Raw. The second return
// is false when the reconstruction is ambiguous: an optional segment without
// captures leaves no trace of whether it was consumed.
func (r *MatchResult) Reassemble() (string, bool) {
	if r.matcher == nil {
		return "", false
	}
	words, ok := reassembleSteps(r.matcher.Steps, r)
	if !ok {
		return "", false
	}
	return strings.Join(words, " "), true
}

func reassembleSteps(steps []Step, r *MatchResult) ([]string, bool) {
	var words []string
	for _, step := range steps {
		switch step.Kind {
		case StepLiteral:
			words = append(words, step.Word)
		case StepCapture:
			value, ok := r.Get(step.Key)
			if !ok {
				return nil, false
			}
			words = append(words, value)
		case StepOptional:
			captures := segmentCaptures(step.Inner)
			if len(captures) == 0 {
				// presence cannot be decided from the result alone
				return nil, false
			}
			if _, ok := r.Get(captures[0]); !ok {
				continue // segment was absent
			}
			inner, ok := reassembleSteps(step.Inner, r)
			if !ok {
				return nil, false
			}
			words = append(words, inner...)
		}
	}
	return words, true
}

func segmentCaptures(steps []Step) []string {
	var keys []string
	for _, step := range steps {
		if step.Kind == StepCapture {
			keys = append(keys, step.Key)
		}
	}
	return keys
}
