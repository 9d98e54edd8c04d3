package grammar

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// TokenKind enumerates the template token categories.
type TokenKind int

const (
	// TokenLiteral is a bare word matched case-insensitively against one
	// input word.
	TokenLiteral TokenKind = iota + 1
	// TokenPlaceholder is a <name> capture slot for exactly one input word.
	// A name containing '|' is an inline enumeration.
	TokenPlaceholder
	// TokenAlternative is a {a|b|c} group capturing one of the listed words.
	TokenAlternative
	// TokenOptional is a [...] segment whose whole content may be absent.
	TokenOptional
)

// Token is one element of a tokenized template.
type Token struct {
	Kind TokenKind
	// Text holds the literal word or the raw placeholder name.
	Text string
	// Choices holds the enumerated values for alternatives and inline
	// enumerations, in authored order.
	Choices []string
	// Inner holds the interior tokens of an optional segment.
	Inner []Token
}

// Tokenize splits a raw template string into typed tokens. Bracket constructs
// never nest, except that a single optional segment may contain literal words
// and placeholders. A {...} group whose body contains an angle bracket is kept
// as opaque literal text rather than rejected, matching how authored sheets
// occasionally abuse the notation.
func Tokenize(template string) ([]Token, error) {
	return tokenize(template, false)
}

func tokenize(s string, inOptional bool) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '<':
			end := strings.IndexByte(s[i:], '>')
			if end < 0 {
				return nil, errors.Wrapf(ErrMalformedTemplate, "unclosed '<' at offset %d", i)
			}
			name := strings.TrimSpace(s[i+1 : i+end])
			tok := Token{Kind: TokenPlaceholder, Text: name}
			if strings.Contains(name, "|") {
				tok.Choices = splitChoices(name)
			}
			tokens = append(tokens, tok)
			i += end + 1
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, errors.Wrapf(ErrMalformedTemplate, "unclosed '{' at offset %d", i)
			}
			if inOptional {
				return nil, errors.Wrap(ErrMalformedTemplate, "alternative group inside optional segment")
			}
			body := s[i+1 : i+end]
			if strings.ContainsAny(body, "<>") {
				// malformed-construct fallback: keep the group as literal text
				tokens = append(tokens, Token{Kind: TokenLiteral, Text: s[i : i+end+1]})
			} else {
				tokens = append(tokens, Token{Kind: TokenAlternative, Choices: splitChoices(body)})
			}
			i += end + 1
		case c == '[':
			if inOptional {
				return nil, errors.Wrap(ErrMalformedTemplate, "optional segment inside optional segment")
			}
			rel := strings.IndexByte(s[i+1:], ']')
			if rel < 0 {
				return nil, errors.Wrapf(ErrMalformedTemplate, "unclosed '[' at offset %d", i)
			}
			body := s[i+1 : i+1+rel]
			if strings.Contains(body, "[") {
				return nil, errors.Wrap(ErrMalformedTemplate, "optional segment inside optional segment")
			}
			inner, err := tokenize(body, true)
			if err != nil {
				return nil, err
			}
			if len(inner) == 0 {
				return nil, errors.Wrap(ErrMalformedTemplate, "empty optional segment")
			}
			tokens = append(tokens, Token{Kind: TokenOptional, Inner: inner})
			i += rel + 2
		case c == '>' || c == '}' || c == ']':
			return nil, errors.Wrapf(ErrMalformedTemplate, "unbalanced %q at offset %d", string(c), i)
		default:
			j := i
			for j < len(s) && !isBoundary(s[j]) {
				j++
			}
			word := s[i:j]
			if word == "," {
				return nil, errors.Wrapf(ErrMalformedTemplate, "dangling %q at offset %d", word, i)
			}
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: word})
			i = j
		}
	}
	return tokens, nil
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '<', '>', '{', '}', '[', ']':
		return true
	}
	return false
}

func splitChoices(body string) []string {
	parts := strings.Split(body, "|")
	parts = lo.Map(parts, func(part string, _ int) string {
		return strings.TrimSpace(part)
	})
	return lo.Filter(parts, func(part string, _ int) bool {
		return part != ""
	})
}
