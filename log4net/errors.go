package log4net

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every *ArgumentError through errors.Is.
var ErrInvalidArgument = errors.New("log4net: invalid argument")

// ArgumentError reports an invalid argument or option value.
type ArgumentError struct {
	// Param is the name of the offending argument.
	Param string
	// Value is the rejected value, nil when the argument was missing.
	Value any
	// Message describes the problem.
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("log4net: %s (parameter '%s')", e.Message, e.Param)
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidEnumError(param string, value any, typeName string) *ArgumentError {
	return &ArgumentError{
		Param:   param,
		Value:   value,
		Message: fmt.Sprintf("The value of argument '%s' (%v) is invalid for enum type '%s'.", param, value, typeName),
	}
}
