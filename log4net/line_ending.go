package log4net

import (
	"fmt"
	"strings"
)

// LineEnding is a set of flags selecting the characters written after each
// event and between indented elements.
type LineEnding int

const (
	// LineEndingNone writes no line ending.
	LineEndingNone LineEnding = 0
	// LineFeed writes "\n".
	LineFeed LineEnding = 1 << 0
	// CarriageReturn writes "\r".
	CarriageReturn LineEnding = 1 << 1
)

// Characters returns the characters for l. Combinations other than None,
// LineFeed, CarriageReturn and CarriageReturn|LineFeed are rejected.
func (l LineEnding) Characters() (string, error) {
	switch l {
	case LineEndingNone:
		return "", nil
	case LineFeed:
		return "\n", nil
	case CarriageReturn:
		return "\r", nil
	case CarriageReturn | LineFeed:
		return "\r\n", nil
	default:
		return "", &ArgumentError{
			Param:   "lineEnding",
			Value:   int(l),
			Message: fmt.Sprintf("The value of argument 'lineEnding' (%d) is invalid for Enum type 'LineEnding'.", int(l)),
		}
	}
}

func (l LineEnding) String() string {
	switch l {
	case LineEndingNone:
		return "None"
	case LineFeed:
		return "LineFeed"
	case CarriageReturn:
		return "CarriageReturn"
	case CarriageReturn | LineFeed:
		return "CarriageReturn, LineFeed"
	default:
		return fmt.Sprintf("LineEnding(%d)", int(l))
	}
}

// ParseLineEnding parses a comma separated list of flag names such as
// "CarriageReturn, LineFeed". "CRLF", "LF" and "CR" are accepted as
// shorthands. Names are matched ignoring case.
func ParseLineEnding(s string) (LineEnding, error) {
	var l LineEnding
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "none":
		case "linefeed", "lf":
			l |= LineFeed
		case "carriagereturn", "cr":
			l |= CarriageReturn
		case "crlf":
			l |= CarriageReturn | LineFeed
		default:
			return 0, &ArgumentError{
				Param:   "lineEnding",
				Value:   s,
				Message: fmt.Sprintf("Requested value '%s' was not found.", strings.TrimSpace(part)),
			}
		}
	}
	return l, nil
}
