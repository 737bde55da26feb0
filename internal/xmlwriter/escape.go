package xmlwriter

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// NeedsEscaping reports whether s contains a character that must be escaped
// inside element content.
func NeedsEscaping(s string) bool {
	return strings.ContainsAny(s, "&<>")
}

// isXMLChar reports whether r may appear in an XML 1.0 document.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r < 0x20:
		return false
	case r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

func hasIllegalChars(s string) bool {
	for i := 0; i < len(s); {
		if c := s[i]; c < utf8.RuneSelf {
			if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
				return true
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !isXMLChar(r) {
			return true
		}
		i += size
	}
	return false
}

// replaceIllegal maps invalid UTF-8 and characters XML forbids to U+FFFD.
var replaceIllegal = runes.Map(func(r rune) rune {
	if isXMLChar(r) {
		return r
	}
	return utf8.RuneError
})

// Sanitize returns s with every character XML 1.0 cannot represent, and
// every invalid UTF-8 sequence, replaced by U+FFFD.
func Sanitize(s string) string {
	if !hasIllegalChars(s) {
		return s
	}
	sanitized, _, err := transform.String(replaceIllegal, s)
	if err != nil {
		return strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	return sanitized
}

func escapeText(buf *bytes.Buffer, s string) {
	s = Sanitize(s)
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}
		buf.WriteString(s[last:i])
		buf.WriteString(esc)
		last = i + 1
	}
	buf.WriteString(s[last:])
}

func escapeAttribute(buf *bytes.Buffer, s string) {
	s = Sanitize(s)
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		case '\n':
			esc = "&#xA;"
		case '\r':
			esc = "&#xD;"
		case '\t':
			esc = "&#x9;"
		default:
			continue
		}
		buf.WriteString(s[last:i])
		buf.WriteString(esc)
		last = i + 1
	}
	buf.WriteString(s[last:])
}
