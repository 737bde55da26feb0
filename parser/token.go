package parser

import (
	"strconv"
	"strings"

	"github.com/willibrandon/mtlog-log4net/core"
)

// MessageTemplateToken represents a single token in a message template.
type MessageTemplateToken interface {
	// Render returns the string representation of the token using the provided properties.
	Render(properties map[string]core.PropertyValue, provider core.FormatProvider) string
}

// TextToken represents literal text in a message template.
type TextToken struct {
	// Text is the literal text content.
	Text string
}

// Render returns the literal text.
func (t *TextToken) Render(map[string]core.PropertyValue, core.FormatProvider) string {
	return t.Text
}

// PropertyToken represents a property placeholder in a message template.
type PropertyToken struct {
	// PropertyName is the name of the property.
	PropertyName string

	// Destructuring specifies how the property should be destructured.
	Destructuring DestructuringHint

	// Format specifies the format string, if any.
	Format string

	// Alignment specifies text alignment, if any.
	Alignment int
}

// Render returns the string representation of the property value, or the
// placeholder itself when the property is missing.
func (p *PropertyToken) Render(properties map[string]core.PropertyValue, provider core.FormatProvider) string {
	value, ok := properties[p.PropertyName]
	if !ok {
		return "{" + p.PropertyName + "}"
	}
	return p.applyAlignment(p.formatValue(value, provider))
}

// DestructuringHint specifies how a property should be destructured.
type DestructuringHint int

const (
	// Default destructuring uses ToString.
	Default DestructuringHint = iota

	// Stringify forces string conversion.
	Stringify

	// Destructure captures object structure.
	Destructure

	// AsScalar treats as scalar value.
	AsScalar
)

// formatValue renders strings without quotes unless the "q" format asks for them.
func (p *PropertyToken) formatValue(value core.PropertyValue, provider core.FormatProvider) string {
	if scalar, ok := value.(*core.ScalarValue); ok {
		if s, ok := scalar.Value.(string); ok {
			if p.Format == "q" {
				return strconv.Quote(s)
			}
			return s
		}
	}
	return core.RenderString(value, p.Format, provider)
}

// applyAlignment pads s to the token's alignment. Negative widths align left;
// widths beyond maxAlignment leave s unpadded.
func (p *PropertyToken) applyAlignment(s string) string {
	if p.Alignment == 0 || p.Alignment > maxAlignment || p.Alignment < -maxAlignment {
		return s
	}
	width := p.Alignment
	if width < 0 {
		width = -width
		if len(s) >= width {
			return s
		}
		return s + strings.Repeat(" ", width-len(s))
	}
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
