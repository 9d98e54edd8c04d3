package grammar

import "strings"

// Constants returns the literal words of a template lying outside any <...>,
// {...} or [...] span, in template order. These words serve as mandatory
// literal gates and as the padding summary of the matched rule; words inside
// brackets are never part of them.
func Constants(template string) []string {
	var out []string
	var cur []byte
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i := 0; i < len(template); i++ {
		switch c := template[i]; c {
		case '<', '{', '[':
			flush()
			// skip the whole span to its own closing bracket, so an opaque
			// group like {a<b} does not swallow the words after it
			end := strings.IndexByte(template[i:], closing(c))
			if end < 0 {
				// unclosed bracket, nothing literal remains
				return out
			}
			i += end
		case '>', '}', ']', ' ', '\t':
			flush()
		default:
			cur = append(cur, c)
		}
	}
	flush()
	return out
}

func closing(open byte) byte {
	switch open {
	case '<':
		return '>'
	case '{':
		return '}'
	default:
		return ']'
	}
}

// Padding is the space-joined form of Constants. Empty when the template has
// no literal word outside brackets.
func Padding(template string) string {
	return strings.Join(Constants(template), " ")
}
