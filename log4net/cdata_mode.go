package log4net

import (
	"fmt"
	"strings"
)

// CDataMode controls when the message and exception are written inside a
// CDATA section.
type CDataMode int

const (
	// CDataAlways always writes a CDATA section.
	CDataAlways CDataMode = iota
	// CDataNever writes escaped text.
	CDataNever
	// CDataIfNeeded writes a CDATA section only when the content contains
	// '&', '<' or '>'.
	CDataIfNeeded
)

func (m CDataMode) String() string {
	switch m {
	case CDataAlways:
		return "Always"
	case CDataNever:
		return "Never"
	case CDataIfNeeded:
		return "IfNeeded"
	default:
		return fmt.Sprintf("CDataMode(%d)", int(m))
	}
}

// IsDefined reports whether m is one of the declared modes.
func (m CDataMode) IsDefined() bool {
	return m >= CDataAlways && m <= CDataIfNeeded
}

// ParseCDataMode parses a mode name, ignoring case.
func ParseCDataMode(s string) (CDataMode, error) {
	for _, m := range []CDataMode{CDataAlways, CDataNever, CDataIfNeeded} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, &ArgumentError{
		Param:   "cDataMode",
		Value:   s,
		Message: fmt.Sprintf("Requested value '%s' was not found. Expected Always, Never or IfNeeded.", s),
	}
}
