package core

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// PropertyValue is the value of a log event property. The four built-in
// kinds are ScalarValue, SequenceValue, DictionaryValue and StructureValue;
// other implementations are treated as opaque leaves by consumers.
type PropertyValue interface {
	// Render writes the value to w. The "l" format renders strings without quotes.
	Render(w io.Writer, format string, provider FormatProvider) error
}

// ScalarValue holds a single primitive value: a string, number, bool, nil,
// time or any other value rendered as text.
type ScalarValue struct {
	Value any
}

// Render writes the scalar. Strings are quoted unless format is "l", nil renders as null.
func (s *ScalarValue) Render(w io.Writer, format string, provider FormatProvider) error {
	var text string
	switch v := s.Value.(type) {
	case nil:
		text = "null"
	case string:
		if format == "l" {
			text = v
		} else {
			text = strconv.Quote(v)
		}
	default:
		text = provider.Format(v, format)
	}
	_, err := io.WriteString(w, text)
	return err
}

// SequenceValue holds an ordered list of values.
type SequenceValue struct {
	Elements []PropertyValue
}

// Render writes the sequence as [a, b, c].
func (s *SequenceValue) Render(w io.Writer, format string, provider FormatProvider) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, element := range s.Elements {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if err := renderElement(w, element, format, provider); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// DictionaryElement is one key/value pair of a DictionaryValue. Keys are always scalars.
type DictionaryElement struct {
	Key   *ScalarValue
	Value PropertyValue
}

// DictionaryValue holds an ordered list of key/value pairs.
type DictionaryValue struct {
	Elements []DictionaryElement
}

// Render writes the dictionary as [("key": value), ...].
func (d *DictionaryValue) Render(w io.Writer, format string, provider FormatProvider) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, element := range d.Elements {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "("); err != nil {
			return err
		}
		if err := renderElement(w, element.Key, format, provider); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ": "); err != nil {
			return err
		}
		if err := renderElement(w, element.Value, format, provider); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ")"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// StructureValue holds named members, optionally tagged with a type name.
type StructureValue struct {
	TypeTag    string
	Properties []*LogEventProperty
}

// Render writes the structure as TypeTag { Name: value, ... }.
func (s *StructureValue) Render(w io.Writer, format string, provider FormatProvider) error {
	var b strings.Builder
	if s.TypeTag != "" {
		b.WriteString(s.TypeTag)
		b.WriteByte(' ')
	}
	b.WriteString("{ ")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for i, property := range s.Properties {
		if i > 0 {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, property.Name+": "); err != nil {
			return err
		}
		if err := renderElement(w, property.Value, format, provider); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " }")
	return err
}

func renderElement(w io.Writer, value PropertyValue, format string, provider FormatProvider) error {
	if value == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return value.Render(w, format, provider)
}

// RenderString renders value to a string, returning "" if rendering fails.
func RenderString(value PropertyValue, format string, provider FormatProvider) string {
	var b strings.Builder
	if err := renderElement(&b, value, format, provider); err != nil {
		return ""
	}
	return b.String()
}

// NewPropertyValue converts a Go value into a PropertyValue. Existing
// PropertyValues are returned unchanged, maps become dictionaries with
// sorted keys, slices and arrays become sequences, structs become
// structures of their exported fields and everything else is a scalar.
// Nesting deeper than maxCaptureDepth is captured as a scalar.
func NewPropertyValue(value any) PropertyValue {
	return capture(value, 0)
}

const maxCaptureDepth = 10

func capture(value any, depth int) PropertyValue {
	switch v := value.(type) {
	case nil:
		return &ScalarValue{}
	case PropertyValue:
		return v
	case string, bool, []byte, error, fmt.Stringer:
		return &ScalarValue{Value: v}
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return &ScalarValue{}
		}
		rv = rv.Elem()
	}
	if depth >= maxCaptureDepth {
		return &ScalarValue{Value: fmt.Sprintf("%v", rv.Interface())}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		elements := make([]PropertyValue, rv.Len())
		for i := range elements {
			elements[i] = capture(rv.Index(i).Interface(), depth+1)
		}
		return &SequenceValue{Elements: elements}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		elements := make([]DictionaryElement, 0, len(keys))
		for _, key := range keys {
			elements = append(elements, DictionaryElement{
				Key:   &ScalarValue{Value: key.Interface()},
				Value: capture(rv.MapIndex(key).Interface(), depth+1),
			})
		}
		return &DictionaryValue{Elements: elements}
	case reflect.Struct:
		t := rv.Type()
		properties := make([]*LogEventProperty, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			properties = append(properties, &LogEventProperty{
				Name:  field.Name,
				Value: capture(rv.Field(i).Interface(), depth+1),
			})
		}
		return &StructureValue{TypeTag: t.Name(), Properties: properties}
	default:
		return &ScalarValue{Value: rv.Interface()}
	}
}
