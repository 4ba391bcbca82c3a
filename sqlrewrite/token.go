package sqlrewrite

import "strings"

// serializedToken describes one PHP serialized string token (`s:N:\"...\";`) located
// inside a line of dump text. All offsets are byte indices into the line. The token
// lives only for the duration of the current scan; nothing survives across lines.
type serializedToken struct {
	// declaredLen is the N of the token: the byte length of the *decoded* content,
	// per the dump's own claim. It is verified against the actual content during
	// the boundary walk before the token is trusted.
	declaredLen int

	// headStart is the index of the 's' of the `s:` opener.
	headStart int

	// contentStart is the index just past the opening `\"`, i.e. the first byte of
	// the escaped content.
	contentStart int

	// contentEnd is the index just past the last byte of the escaped content
	// (the backslash of the closing `\";` sits at contentEnd).
	contentEnd int

	// resume is the index just past the closing `\";`, where line processing continues.
	resume int
}

// findToken scans line[from:] for the next serialized string token and walks its
// content to locate the closing delimiter.
//
// ok is false when no trustworthy token remains in the tail. That covers two cases
// the caller treats identically: no `s:N:\"` header exists at all, or a header was
// found but its content failed the boundary walk (declared length does not line up
// with a closing `\";`). In the latter case the remainder of the line, starting at
// the failed header, is plain text as far as the rewrite is concerned. Dumps
// legitimately contain look-alikes (e.g. inside comments), so the fallback is
// silent, never an error.
func findToken(line string, from int) (tok serializedToken, ok bool) {
	for i := from; i < len(line); {
		rel := strings.Index(line[i:], "s:")
		if rel < 0 {
			return serializedToken{}, false
		}
		i += rel

		tok, headOK := parseTokenHead(line, i)
		if !headOK {
			// not a token opener, keep scanning past the 's'
			i++
			continue
		}

		contentEnd, resume, walkOK := walkContent(line, tok.contentStart, tok.declaredLen)
		if !walkOK {
			// the header looked real but the content does not check out;
			// the rest of the line is treated as literal text
			return serializedToken{}, false
		}

		tok.contentEnd = contentEnd
		tok.resume = resume
		return tok, true
	}

	return serializedToken{}, false
}

// parseTokenHead checks for a full token opener `s:<digits>:\"` at line[start:] and
// parses the declared length. Insufficient bytes, a missing digit run, or a missing
// `:\"` after the digits all mean "no token here".
func parseTokenHead(line string, start int) (tok serializedToken, ok bool) {
	i := start + 2 // past "s:"

	if i >= len(line) || !isDigit(line[i]) {
		return serializedToken{}, false
	}

	declared := 0
	for i < len(line) && isDigit(line[i]) {
		declared = declared*10 + int(line[i]-'0')
		i++
	}

	// the digit run must be followed by `:` and the escaped opening quote `\"`
	if i+2 >= len(line) || line[i] != ':' || line[i+1] != '\\' || line[i+2] != '"' {
		return serializedToken{}, false
	}

	return serializedToken{
		declaredLen:  declared,
		headStart:    start,
		contentStart: i + 3,
	}, true
}

// walkContent walks the escaped content one source byte at a time, counting decoded
// bytes, until it finds the closing `\";` exactly at the declared length.
//
// Escape pairs are consumed as two source bytes and counted as one decoded byte.
// The walk fails when the decoded count exceeds declaredLen before the closing
// delimiter appears, or when the line ends first. Every index access is bounds
// checked; running out of bytes is a failure, never a panic.
func walkContent(line string, contentStart, declaredLen int) (contentEnd, resume int, ok bool) {
	decoded := 0

	for i := contentStart; i < len(line); {
		b := line[i]

		switch {
		case b == '\\' && decoded < declaredLen:
			// an escape pair while content bytes are still owed
			if i+1 >= len(line) {
				return 0, 0, false
			}
			decoded++
			i += 2

		case b == '\\' && decoded == declaredLen && i+2 < len(line) && line[i+1] == '"' && line[i+2] == ';':
			// closing delimiter, found exactly where the declared length says
			return i, i + 3, true

		default:
			decoded++
			i++
			if decoded > declaredLen {
				return 0, 0, false
			}
		}
	}

	return 0, 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
