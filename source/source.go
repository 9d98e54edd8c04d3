package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/cligram-io/cligram/grammar"
)

// Row is one (verb, object, template) grammar row as read from the tabular
// source, before or after normalization.
type Row struct {
	Verb     string
	Object   string
	Template string
	// Line is the 1-based position in the source document.
	Line int
}

// ID returns the stable row identifier carried into matchers and diagnostics.
func (r Row) ID() string {
	return fmt.Sprintf("%04d_%s_%s", r.Line, r.Verb, r.Object)
}

var (
	verbSplit   = regexp.MustCompile(`[/|,]`)
	commandVerb = regexp.MustCompile(`^[a-zA-Z]`)
	// authored sheets interleave annotation rows written in CJK text
	cjkText = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
)

// Load reads a grammar source file, dispatching on the extension. CSV files
// are treated as headerless sheet exports, yaml/yml as rule documents.
func Load(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	default:
		return nil, errors.Newf("unsupported grammar source %q, expected .csv or .yaml", path)
	}
}

// Normalize prepares raw rows for compilation:
//   - blank verb/object cells inherit the value of the preceding row
//     (merged cells in the authored sheet),
//   - rows without a template and CJK annotation rows are dropped,
//   - verbs not starting with a letter and policy skip-verbs are dropped,
//   - multi-verb cells such as "bind/unbind" expand into one row per verb.
//
// Verbs are lowercased; objects and templates keep their authored form.
func Normalize(rows []Row, policy grammar.Policy) []Row {
	var out []Row
	prevVerb, prevObject := "", ""

	for _, row := range rows {
		verb := strings.TrimSpace(row.Verb)
		object := strings.TrimSpace(row.Object)
		if verb == "" {
			verb = prevVerb
		}
		if object == "" {
			object = prevObject
		}
		prevVerb, prevObject = verb, object

		template := strings.TrimSpace(row.Template)
		if verb == "" || object == "" || template == "" {
			continue
		}
		if cjkText.MatchString(template) {
			continue
		}
		if !commandVerb.MatchString(verb) {
			continue
		}

		for _, v := range verbSplit.Split(strings.ToLower(verb), -1) {
			v = strings.TrimSpace(v)
			if v == "" || policy.SkipVerb(v) {
				continue
			}
			out = append(out, Row{
				Verb:     v,
				Object:   object,
				Template: template,
				Line:     row.Line,
			})
		}
	}
	return out
}

// SyntaxLines renders normalized rows as full "verb object template" lines.
func SyntaxLines(rows []Row) []string {
	return lo.Map(rows, func(r Row, _ int) string {
		return fmt.Sprintf("%s %s %s", r.Verb, r.Object, r.Template)
	})
}
