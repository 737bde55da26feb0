package core

import "strconv"

// LogEventLevel specifies the severity of a log event.
type LogEventLevel int

const (
	// VerboseLevel is the most detailed logging level.
	VerboseLevel LogEventLevel = iota

	// DebugLevel is for debugging information.
	DebugLevel

	// InformationLevel is for informational messages.
	InformationLevel

	// WarningLevel is for warnings.
	WarningLevel

	// ErrorLevel is for errors.
	ErrorLevel

	// FatalLevel is for fatal errors.
	FatalLevel
)

// IsDefined reports whether the level is one of the six known levels.
func (l LogEventLevel) IsDefined() bool {
	return l >= VerboseLevel && l <= FatalLevel
}

// String returns the level name, e.g. "Information".
func (l LogEventLevel) String() string {
	switch l {
	case VerboseLevel:
		return "Verbose"
	case DebugLevel:
		return "Debug"
	case InformationLevel:
		return "Information"
	case WarningLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal"
	default:
		return "LogEventLevel(" + strconv.Itoa(int(l)) + ")"
	}
}
