package parser

import (
	"strings"

	"github.com/willibrandon/mtlog-log4net/core"
)

// MessageTemplate represents a parsed message template.
type MessageTemplate struct {
	// Raw is the original template string.
	Raw string

	// Tokens are the parsed tokens from the template.
	Tokens []MessageTemplateToken
}

// Render generates the final message using the provided properties.
func (mt *MessageTemplate) Render(properties map[string]core.PropertyValue, provider core.FormatProvider) string {
	var b strings.Builder
	b.Grow(len(mt.Raw))
	for _, token := range mt.Tokens {
		b.WriteString(token.Render(properties, provider))
	}
	return b.String()
}

// RenderMessage parses the event's message template and renders it against
// the event's properties. Templates are cached after the first parse.
func RenderMessage(event *core.LogEvent, provider core.FormatProvider) string {
	tmpl, err := ParseCached(event.MessageTemplate)
	if err != nil {
		return event.MessageTemplate
	}
	return tmpl.Render(event.PropertyMap(), provider)
}
