package grammar

import "strings"

const (
	defaultPaddingKey     = "padding"
	defaultAnonymousStem  = "keyword"
	defaultSanitizePrefix = "arg_"
)

// Policy carries the knobs that were module-wide toggles in earlier generations
// of the grammar tooling. It is threaded explicitly through compilation,
// matching and source loading so that several grammars with different policies
// can coexist in one process. The zero value behaves like DefaultPolicy.
type Policy struct {
	// PaddingKey names the result argument holding the matched template's
	// literal words.
	PaddingKey string
	// AnonymousStem is the key stem for {a|b} groups without an authored name;
	// groups are numbered keyword_1, keyword_2, ... per matcher.
	AnonymousStem string
	// SanitizePrefix prefixes capture keys that would otherwise be empty or
	// start with a digit.
	SanitizePrefix string
	// SkipVerbs lists verbs whose grammar rows are suppressed during source
	// normalization. Compared case-insensitively.
	SkipVerbs []string
}

// DefaultPolicy returns the policy matching the authored grammar sheets:
// padding under "padding", anonymous keyword captures, and query-style "show"
// rows suppressed.
func DefaultPolicy() Policy {
	return Policy{
		PaddingKey:     defaultPaddingKey,
		AnonymousStem:  defaultAnonymousStem,
		SanitizePrefix: defaultSanitizePrefix,
		SkipVerbs:      []string{"show"},
	}
}

// SkipVerb reports whether rows for verb are suppressed by this policy.
func (p Policy) SkipVerb(verb string) bool {
	for _, skip := range p.SkipVerbs {
		if strings.EqualFold(skip, verb) {
			return true
		}
	}
	return false
}

func (p Policy) paddingKey() string {
	if p.PaddingKey == "" {
		return defaultPaddingKey
	}
	return p.PaddingKey
}

func (p Policy) anonymousStem() string {
	if p.AnonymousStem == "" {
		return defaultAnonymousStem
	}
	return p.AnonymousStem
}

func (p Policy) sanitizePrefix() string {
	if p.SanitizePrefix == "" {
		return defaultSanitizePrefix
	}
	return p.SanitizePrefix
}
