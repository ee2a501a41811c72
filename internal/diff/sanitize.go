package diff

import (
	"strings"
	"unicode/utf8"
)

const (
	hexDigits   = "0123456789ABCDEF"
	tabWidth    = 4
	replacement = '�'
)

// sanitizeLine makes a line's content safe to embed in RenderPretty output:
//   - \t becomes tabWidth spaces, so display widths can be measured.
//   - Every other ASCII control character (<= 0x1F, and 0x7F) becomes "\xXX". This includes ESC and \r, which would otherwise move the cursor or restyle the terminal.
//   - Invalid UTF-8 becomes U+FFFD.
func sanitizeLine(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(replacement)
			continue
		}

		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case r < 0x20 || r == 0x7F:
			b.WriteByte('\\')
			b.WriteByte('x')
			b.WriteByte(hexDigits[byte(r)>>4])
			b.WriteByte(hexDigits[byte(r)&0x0F])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
