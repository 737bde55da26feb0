// Package parser parses and renders message templates such as
// "User {UserId} logged in from {City,-10}" against log event properties.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse parses a message template string into a MessageTemplate.
// Malformed placeholders are kept as literal text.
func Parse(template string) (*MessageTemplate, error) {
	tokens := []MessageTemplateToken{}
	var text strings.Builder

	flushText := func() {
		if text.Len() > 0 {
			tokens = append(tokens, &TextToken{Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch c := template[i]; {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			text.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			text.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end == -1 {
				// Unclosed property - treat the rest as text
				text.WriteString(template[i:])
				i = len(template)
				continue
			}
			content := template[i+1 : i+1+end]
			if token, ok := parsePropertyToken(content); ok {
				flushText()
				tokens = append(tokens, token)
			} else {
				text.WriteString(template[i : i+end+2])
			}
			i += end + 2
		default:
			text.WriteByte(c)
			i++
		}
	}
	flushText()

	return &MessageTemplate{
		Raw:    template,
		Tokens: tokens,
	}, nil
}

// parsePropertyToken parses the content between braces:
// [@|$]Name[,alignment][:format].
func parsePropertyToken(content string) (*PropertyToken, bool) {
	token := &PropertyToken{Destructuring: Default}
	name := content

	if len(name) > 0 {
		switch name[0] {
		case '@':
			token.Destructuring = Destructure
			name = name[1:]
		case '$':
			token.Destructuring = AsScalar
			name = name[1:]
		}
	}

	if colon := strings.IndexByte(name, ':'); colon != -1 {
		token.Format = name[colon+1:]
		name = name[:colon]
	}
	if comma := strings.IndexByte(name, ','); comma != -1 {
		alignment, err := parseAlignment(strings.TrimSpace(name[comma+1:]))
		if err != nil {
			return nil, false
		}
		token.Alignment = alignment
		name = name[:comma]
	}

	name = strings.TrimSpace(name)
	if !isValidPropertyName(name) {
		return nil, false
	}
	token.PropertyName = name
	return token, true
}

// maxAlignment bounds the padding width a template can request.
const maxAlignment = 1000

// parseAlignment parses an alignment specification.
// Positive numbers mean right-align, negative mean left-align.
func parseAlignment(s string) (int, error) {
	width, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid alignment: %s", s)
	}
	if width > maxAlignment || width < -maxAlignment {
		return 0, fmt.Errorf("alignment %d out of range", width)
	}
	return int(width), nil
}

// isValidPropertyName accepts letters, digits, '_' and '.', not starting with '.'.
func isValidPropertyName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		case i > 0 && r == '.':
		default:
			return false
		}
	}

	return true
}
