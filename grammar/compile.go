package grammar

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// StepKind enumerates compiled match step categories.
type StepKind int

const (
	// StepLiteral gates acceptance on a case-insensitive word match and never
	// produces an argument.
	StepLiteral StepKind = iota + 1
	// StepCapture binds exactly one input word under Key.
	StepCapture
	// StepOptional wraps the steps of a skippable segment.
	StepOptional
)

// Step is one unit of a compiled matcher.
type Step struct {
	Kind StepKind
	// Word is the literal to compare against, for StepLiteral.
	Word string
	// Key is the resolved argument key, for StepCapture.
	Key string
	// Choices constrains the captured word to an enumerated set, compared
	// case-sensitively. Nil means any single word.
	Choices []string
	// Inner holds the segment steps, for StepOptional.
	Inner []Step
}

// Capture is one entry of a matcher's name-resolution table.
type Capture struct {
	// Key is the sanitized, deduplicated argument key.
	Key string
	// RawName is the authored placeholder name, empty for anonymous groups.
	RawName string
	// Choices is the enumerated constraint, nil when unconstrained.
	Choices []string
}

// Matcher is one compiled template bound to its (verb, object) head.
type Matcher struct {
	Verb   string
	Object string

	// Steps is the full ordered match sequence. The first two steps are the
	// verb and object literal gates; the rest derive from the template.
	Steps []Step

	// Captures lists the capture slots in template left-to-right order.
	Captures []Capture

	// Padding is the space-joined literal words of the template found outside
	// any bracket construct. Empty when there are none.
	Padding string

	// Template is the originating template text, kept for diagnostics.
	Template string
	// RowID is the stable identifier of the grammar row this matcher came from.
	RowID string
}

// Rule renders the full human-readable syntax this matcher accepts.
func (m *Matcher) Rule() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", m.Verb, m.Object, m.Template))
}

// Compile turns one grammar row into a Matcher. rowID is carried into the
// matcher and into any CompileError for diagnostics.
func Compile(rowID, verb, object, template string, policy Policy) (*Matcher, error) {
	tokens, err := Tokenize(template)
	if err != nil {
		return nil, &CompileError{RowID: rowID, Template: template, cause: err}
	}

	c := &compiler{policy: policy, used: make(map[string]int)}
	steps, err := c.steps(tokens)
	if err != nil {
		return nil, &CompileError{RowID: rowID, Template: template, cause: err}
	}

	head := []Step{
		{Kind: StepLiteral, Word: verb},
		{Kind: StepLiteral, Word: object},
	}
	return &Matcher{
		Verb:     verb,
		Object:   object,
		Steps:    append(head, steps...),
		Captures: c.captures,
		Padding:  Padding(template),
		Template: template,
		RowID:    rowID,
	}, nil
}

type compiler struct {
	policy   Policy
	used     map[string]int
	anon     int
	captures []Capture
}

func (c *compiler) steps(tokens []Token) ([]Step, error) {
	var steps []Step
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			steps = append(steps, Step{Kind: StepLiteral, Word: tok.Text})

		case TokenPlaceholder:
			raw := tok.Text
			if strings.Contains(raw, "|") && len(tok.Choices) == 0 {
				return nil, errors.Wrapf(ErrMalformedTemplate, "enumeration <%s> has no choices", raw)
			}
			// inline enumerations take their key from the first choice
			name := raw
			if len(tok.Choices) > 0 {
				name = tok.Choices[0]
			}
			key := c.resolve(c.sanitize(name))
			steps = append(steps, Step{Kind: StepCapture, Key: key, Choices: tok.Choices})
			c.captures = append(c.captures, Capture{Key: key, RawName: raw, Choices: tok.Choices})

		case TokenAlternative:
			if len(tok.Choices) == 0 {
				return nil, errors.Wrap(ErrMalformedTemplate, "alternative group has no choices")
			}
			c.anon++
			key := c.resolve(fmt.Sprintf("%s_%d", c.policy.anonymousStem(), c.anon))
			steps = append(steps, Step{Kind: StepCapture, Key: key, Choices: tok.Choices})
			c.captures = append(c.captures, Capture{Key: key, Choices: tok.Choices})

		case TokenOptional:
			inner, err := c.steps(tok.Inner)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{Kind: StepOptional, Inner: inner})

		default:
			return nil, errors.Wrapf(ErrMalformedTemplate, "unknown token kind %d", tok.Kind)
		}
	}
	return steps, nil
}

// resolve deduplicates sanitized keys within one matcher: the second and later
// occurrences get _1, _2, ... suffixes in left-to-right order.
func (c *compiler) resolve(key string) string {
	n := c.used[key]
	c.used[key] = n + 1
	if n == 0 {
		return key
	}
	return fmt.Sprintf("%s_%d", key, n)
}

// sanitize maps an authored placeholder name to a valid identifier: runs of
// characters outside letters, digits and underscore collapse to one underscore,
// and an empty or digit-leading result gets the policy prefix.
func (c *compiler) sanitize(raw string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(raw) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			pending = false
			continue
		}
		if !pending {
			b.WriteByte('_')
			pending = true
		}
	}
	key := b.String()
	if key == "" || unicode.IsDigit(rune(key[0])) {
		key = c.policy.sanitizePrefix() + key
	}
	return key
}
