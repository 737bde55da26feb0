package log4net

import (
	"github.com/willibrandon/mtlog-log4net/core"
)

// Settings holds string keyed formatter options as found in configuration
// files. Zero values leave the corresponding default untouched.
type Settings struct {
	// FormatProvider is a culture name such as "fr-CH".
	FormatProvider string `json:"formatProvider,omitempty" yaml:"formatProvider,omitempty"`
	// CDataMode is Always, Never or IfNeeded.
	CDataMode string `json:"cDataMode,omitempty" yaml:"cDataMode,omitempty"`
	// NullText is written in the value attribute of null properties.
	NullText *string `json:"nullText,omitempty" yaml:"nullText,omitempty"`
	// NoNullText omits the value attribute of null properties.
	NoNullText bool `json:"noNullText,omitempty" yaml:"noNullText,omitempty"`
	// NoXmlNamespace writes unqualified elements.
	NoXmlNamespace bool `json:"noXmlNamespace,omitempty" yaml:"noXmlNamespace,omitempty"`
	// LineEnding is a flag list such as "CarriageReturn, LineFeed".
	LineEnding string `json:"lineEnding,omitempty" yaml:"lineEnding,omitempty"`
	// Indentation is made only of spaces or only of tabs. Empty disables indentation.
	Indentation *string `json:"indentation,omitempty" yaml:"indentation,omitempty"`
	// Log4JCompatibility selects the log4j layout. It is applied before the
	// other settings so they can override it.
	Log4JCompatibility bool `json:"log4JCompatibility,omitempty" yaml:"log4JCompatibility,omitempty"`
}

// Apply configures b from the settings. Parse errors are reported by Build.
func (s Settings) Apply(b OptionsBuilder) OptionsBuilder {
	if s.Log4JCompatibility {
		b = b.UseLog4JCompatibility()
	}
	if s.FormatProvider != "" {
		provider, err := core.ParseCulture(s.FormatProvider)
		if err != nil {
			return b.fail(&ArgumentError{Param: "formatProvider", Value: s.FormatProvider, Message: err.Error()})
		}
		b = b.UseFormatProvider(provider)
	}
	if s.CDataMode != "" {
		mode, err := ParseCDataMode(s.CDataMode)
		if err != nil {
			return b.fail(err)
		}
		b = b.UseCDataMode(mode)
	}
	if s.NullText != nil {
		b = b.UseNullText(*s.NullText)
	}
	if s.NoNullText {
		b = b.UseNoNullText()
	}
	if s.NoXmlNamespace {
		b = b.UseNoXmlNamespace()
	}
	if s.LineEnding != "" {
		lineEnding, err := ParseLineEnding(s.LineEnding)
		if err != nil {
			return b.fail(err)
		}
		b = b.UseLineEnding(lineEnding)
	}
	if s.Indentation != nil {
		indentation, ok, err := ParseIndentation(*s.Indentation)
		switch {
		case err != nil:
			return b.fail(err)
		case ok:
			b = b.UseIndentationSettings(indentation)
		default:
			b = b.UseNoIndentation()
		}
	}
	return b
}

// NewFormatterFromSettings builds a formatter from settings.
func NewFormatterFromSettings(s Settings) (*Formatter, error) {
	return NewFormatter(s.Apply)
}
