package sqlrewrite

import "strings"

// decodeEscape returns the raw byte an escape pair `\`+b decodes to inside dump text.
//
// NOTE: `\0` decodes to the ASCII character '0', not a NUL byte. This mirrors the
// original tool's behavior exactly and is kept as is; see DESIGN.md.
func decodeEscape(b byte) byte {
	switch b {
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'b':
		return 0x08
	case 'f':
		return '\f'
	case '0':
		return '0'
	default:
		// an unrecognized pair decodes to the escaped byte itself
		return b
	}
}

// unescape maps the dump's backslash-escaped representation to raw decoded bytes.
// A trailing lone backslash is kept verbatim.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		b := s[i]

		if b == '\\' && i+1 < len(s) {
			sb.WriteByte(decodeEscape(s[i+1]))
			i += 2
			continue
		}

		sb.WriteByte(b)
		i++
	}

	return sb.String()
}

// decodedLen counts the decoded byte length of escaped content without building
// the decoded string. Every escape pair listed in decodeEscape decodes to exactly
// one byte, so pairs count as 1 and plain bytes count as 1.
func decodedLen(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
		} else {
			i++
		}
		n++
	}
	return n
}
