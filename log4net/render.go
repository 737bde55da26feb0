package log4net

import (
	"strconv"

	"github.com/willibrandon/mtlog-log4net/core"
)

// flatEntry is one data element. A nil value writes no value attribute.
type flatEntry struct {
	name  string
	value *string
}

// renderValue renders a value for an attribute. String scalars are written
// without quotes.
func (o *Options) renderValue(value core.PropertyValue) string {
	format := ""
	if scalar, ok := value.(*core.ScalarValue); ok {
		if _, isString := scalar.Value.(string); isString {
			format = "l"
		}
	}
	return core.RenderString(value, format, o.formatProvider)
}

// flatten appends the data entries of one property. Sequence elements are
// named parent[i], dictionary entries parent.key and structure members
// parent.member, recursively.
func (o *Options) flatten(entries []flatEntry, name string, value core.PropertyValue) []flatEntry {
	switch v := value.(type) {
	case nil:
		return append(entries, flatEntry{name: name, value: o.nullText})
	case *core.ScalarValue:
		if v.Value == nil {
			return append(entries, flatEntry{name: name, value: o.nullText})
		}
	case *core.SequenceValue:
		for i, element := range v.Elements {
			entries = o.flatten(entries, name+"["+strconv.Itoa(i)+"]", element)
		}
		return entries
	case *core.DictionaryValue:
		for _, element := range v.Elements {
			entries = o.flatten(entries, name+"."+o.renderValue(element.Key), element.Value)
		}
		return entries
	case *core.StructureValue:
		for _, property := range v.Properties {
			entries = o.flatten(entries, name+"."+property.Name, property.Value)
		}
		return entries
	}

	text := o.renderValue(value)
	return append(entries, flatEntry{name: name, value: &text})
}
