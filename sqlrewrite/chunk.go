package sqlrewrite

import (
	"strconv"
	"strings"
)

// RewriteLine applies the rules to one line of dump text, alternating between
// literal regions and serialized string tokens.
//
// Literal regions get plain cascading replacement. Token content gets the same
// cascading replacement applied to its escaped bytes, after which the token is
// re-emitted with its declared length recomputed from the decoded length of the
// new content. Bytes outside tokens are never subjected to a length check.
//
// The line is expected to arrive exactly as read from the dump, trailing newline
// included; the result is what should be written out in its place.
func RewriteLine(line string, rules []Rule) string {
	if len(rules) == 0 {
		return line
	}

	var sb strings.Builder
	sb.Grow(len(line))

	pos := 0
	for pos < len(line) {
		tok, ok := findToken(line, pos)
		if !ok {
			sb.WriteString(Cascade(line[pos:], rules))
			return sb.String()
		}

		// literal prefix before the token
		sb.WriteString(Cascade(line[pos:tok.headStart], rules))

		writeToken(&sb, Cascade(line[tok.contentStart:tok.contentEnd], rules))

		pos = tok.resume
	}

	return sb.String()
}

// writeToken emits a serialized string token around the (escaped) content, with the
// declared length recomputed so that it equals the decoded byte length of content.
func writeToken(sb *strings.Builder, content string) {
	sb.WriteString("s:")
	sb.WriteString(strconv.Itoa(decodedLen(content)))
	sb.WriteString(`:\"`)
	sb.WriteString(content)
	sb.WriteString(`\";`)
}
