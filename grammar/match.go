package grammar

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Match classifies one free-text command line against the table. The first two
// whitespace-delimited words select the (verb, object) bucket; the bucket's
// matchers are tried in registration order and the first one to consume the
// whole line wins. Word case is preserved in captured values; literal
// comparisons are case-insensitive.
//
// Match allocates all of its working state, so concurrent calls over a sealed
// table are safe.
func Match(line string, table *Table, policy Policy) (*MatchResult, error) {
	words := strings.Fields(line)
	if len(words) < 2 {
		return nil, errors.Wrapf(ErrMalformedInput, "need verb and object, got %d word(s)", len(words))
	}
	verb, object := words[0], words[1]

	bucket := table.Lookup(verb, object)
	if bucket == nil {
		return nil, errors.Wrapf(ErrUnknownCommandHead, "%s %s", verb, object)
	}

	for _, m := range bucket {
		args, ok := consume(m.Steps, words)
		if !ok {
			continue
		}
		result := &MatchResult{
			Verb:    m.Verb,
			Object:  m.Object,
			Raw:     line,
			Rule:    m.Rule(),
			RowID:   m.RowID,
			matcher: m,
		}
		if m.Padding != "" {
			result.Args = append(result.Args, Arg{Key: policy.paddingKey(), Value: m.Padding})
		}
		result.Args = append(result.Args, args...)
		return result, nil
	}

	return nil, &NoMatchError{
		Verb:   verb,
		Object: object,
		Attempted: lo.Map(bucket, func(m *Matcher, _ int) string {
			return m.Rule()
		}),
	}
}

// consume walks steps against words left to right, returning the captured
// arguments in step order. An optional segment is tried with its content
// present first; if the remaining steps then cannot consume the remaining
// words, the whole segment is retried as absent. The walk recurses on the
// tail, so templates with several optional segments resolve without a separate
// backtracking engine.
func consume(steps []Step, words []string) ([]Arg, bool) {
	if len(steps) == 0 {
		return nil, len(words) == 0
	}
	step, rest := steps[0], steps[1:]

	switch step.Kind {
	case StepLiteral:
		if len(words) == 0 || !strings.EqualFold(words[0], step.Word) {
			return nil, false
		}
		return consume(rest, words[1:])

	case StepCapture:
		if len(words) == 0 {
			return nil, false
		}
		if step.Choices != nil && !lo.Contains(step.Choices, words[0]) {
			return nil, false
		}
		args, ok := consume(rest, words[1:])
		if !ok {
			return nil, false
		}
		return append([]Arg{{Key: step.Key, Value: words[0]}}, args...), true

	case StepOptional:
		present := make([]Step, 0, len(step.Inner)+len(rest))
		present = append(present, step.Inner...)
		present = append(present, rest...)
		if args, ok := consume(present, words); ok {
			return args, true
		}
		return consume(rest, words)
	}
	return nil, false
}
