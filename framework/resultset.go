package framework

import (
	"encoding/json"
	"sort"
)

// Format selects how a result set renders itself.
type Format int32

const (
	FormatDefault Format = iota + 1
	FormatPlain
	FormatJSON
	FormatTable
	FormatLine
)

var name2Format = map[string]Format{
	"default": FormatDefault,
	"plain":   FormatPlain,
	"json":    FormatJSON,
	"table":   FormatTable,
	"line":    FormatLine,
}

// ResultSet is the interface for printable command results.
type ResultSet interface {
	PrintAs(Format) string
	Entities() any
}

// PresetResultSet implements Stringer and "memorizes" the output format.
type PresetResultSet struct {
	ResultSet
	format Format
}

func (rs *PresetResultSet) String() string {
	if rs.format < FormatDefault {
		return rs.PrintAs(FormatDefault)
	}
	return rs.PrintAs(rs.format)
}

func NewPresetResultSet(rs ResultSet, format Format) *PresetResultSet {
	return &PresetResultSet{
		ResultSet: rs,
		format:    format,
	}
}

// NameFormat maps a format name to its Format, falling back to FormatDefault.
func NameFormat(name string) Format {
	f, ok := name2Format[name]
	if !ok {
		return FormatDefault
	}
	return f
}

// FormatNames lists the recognized format names, sorted, for flag help text.
func FormatNames() []string {
	names := make([]string, 0, len(name2Format))
	for name := range name2Format {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON is a helper for JSON serialization. It returns a pretty-printed
// JSON string of the given value.
func MarshalJSON(v any) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(bs)
}
