package log4net

import (
	"fmt"
	"strings"
)

// Indentation is the character used to indent nested elements.
type Indentation int

const (
	// Space indents with ' '.
	Space Indentation = iota
	// Tab indents with '\t'.
	Tab
)

func (i Indentation) String() string {
	switch i {
	case Space:
		return "Space"
	case Tab:
		return "Tab"
	default:
		return fmt.Sprintf("Indentation(%d)", int(i))
	}
}

// MaxIndentationSize is the largest accepted repeat count.
const MaxIndentationSize = 255

// IndentationSettings pairs an indentation character with a repeat count.
type IndentationSettings struct {
	indentation Indentation
	size        int
}

// NewIndentationSettings validates and returns indentation settings.
// size must be in [1, MaxIndentationSize].
func NewIndentationSettings(indentation Indentation, size int) (IndentationSettings, error) {
	if indentation != Space && indentation != Tab {
		return IndentationSettings{}, invalidEnumError("indentation", int(indentation), "Indentation")
	}
	if size < 1 || size > MaxIndentationSize {
		return IndentationSettings{}, &ArgumentError{
			Param:   "size",
			Value:   size,
			Message: fmt.Sprintf("The value of argument 'size' must be between 1 and %d, got %d.", MaxIndentationSize, size),
		}
	}
	return IndentationSettings{indentation: indentation, size: size}, nil
}

// MustIndentationSettings is like NewIndentationSettings but panics on error.
func MustIndentationSettings(indentation Indentation, size int) IndentationSettings {
	settings, err := NewIndentationSettings(indentation, size)
	if err != nil {
		panic(err)
	}
	return settings
}

// Indentation returns the indentation character kind.
func (s IndentationSettings) Indentation() Indentation {
	return s.indentation
}

// Size returns the repeat count.
func (s IndentationSettings) Size() int {
	return s.size
}

// String returns the indentation string written per nesting level.
func (s IndentationSettings) String() string {
	c := " "
	if s.indentation == Tab {
		c = "\t"
	}
	return strings.Repeat(c, s.size)
}

// ParseIndentation parses an indentation made only of spaces or only of
// tabs. The empty string means no indentation and yields ok == false.
func ParseIndentation(s string) (settings IndentationSettings, ok bool, err error) {
	if s == "" {
		return IndentationSettings{}, false, nil
	}
	for _, indentation := range []Indentation{Space, Tab} {
		c := " "
		if indentation == Tab {
			c = "\t"
		}
		count := strings.Count(s, c)
		if count != len(s) {
			continue
		}
		if count > MaxIndentationSize {
			return IndentationSettings{}, false, &ArgumentError{
				Param:   "indentation",
				Value:   s,
				Message: fmt.Sprintf("The indentation exceeds the maximum number of allowed %ss. (%d > %d)", strings.ToLower(indentation.String()), count, MaxIndentationSize),
			}
		}
		return IndentationSettings{indentation: indentation, size: count}, true, nil
	}
	return IndentationSettings{}, false, &ArgumentError{
		Param:   "indentation",
		Value:   s,
		Message: "The indentation must contains only space or tab characters.",
	}
}
