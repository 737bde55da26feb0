package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatProvider supplies culture-specific formatting for numbers and
// message rendering. The zero value is the invariant culture.
type FormatProvider struct {
	tag     language.Tag
	printer *message.Printer
}

// InvariantCulture formats values independently of any locale.
var InvariantCulture = FormatProvider{}

// Culture returns a provider formatting numbers for the given language tag.
// language.Und yields the invariant culture.
func Culture(tag language.Tag) FormatProvider {
	if tag == language.Und {
		return InvariantCulture
	}
	return FormatProvider{tag: tag, printer: message.NewPrinter(tag)}
}

// ParseCulture parses a BCP 47 culture name such as "fr-CH".
// The empty string and "invariant" yield the invariant culture.
func ParseCulture(name string) (FormatProvider, error) {
	if name == "" || strings.EqualFold(name, "invariant") {
		return InvariantCulture, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return InvariantCulture, fmt.Errorf("invalid culture %q: %w", name, err)
	}
	return Culture(tag), nil
}

// IsInvariant reports whether p is the invariant culture.
func (p FormatProvider) IsInvariant() bool {
	return p.printer == nil
}

// Name returns the culture name, or "" for the invariant culture.
func (p FormatProvider) Name() string {
	if p.IsInvariant() {
		return ""
	}
	return p.tag.String()
}

// Format renders a scalar value. format follows the message template
// conventions: "000" zero padding, "x"/"X" hex, "F2"/"N2"/"E"/"G"/"P"
// for floats and .NET-style layouts such as "yyyy-MM-dd" for times.
func (p FormatProvider) Format(value any, format string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return p.formatInteger(int64(v), format)
	case int8:
		return p.formatInteger(int64(v), format)
	case int16:
		return p.formatInteger(int64(v), format)
	case int32:
		return p.formatInteger(int64(v), format)
	case int64:
		return p.formatInteger(v, format)
	case uint:
		return p.formatUnsigned(uint64(v), format)
	case uint8:
		return p.formatUnsigned(uint64(v), format)
	case uint16:
		return p.formatUnsigned(uint64(v), format)
	case uint32:
		return p.formatUnsigned(uint64(v), format)
	case uint64:
		return p.formatUnsigned(v, format)
	case float32:
		return p.formatFloat(float64(v), 32, format)
	case float64:
		return p.formatFloat(v, 64, format)
	case time.Time:
		if format != "" {
			return v.Format(convertTimeLayout(format))
		}
		return v.Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case []byte:
		if utf8.Valid(v) {
			return string(v)
		}
		return fmt.Sprintf("%v", v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (p FormatProvider) formatInteger(num int64, format string) string {
	switch {
	case format == "x":
		return strconv.FormatInt(num, 16)
	case format == "X":
		return strings.ToUpper(strconv.FormatInt(num, 16))
	case len(format) > 0 && format[0] == '0':
		return fmt.Sprintf("%0*d", len(format), num)
	}
	if p.IsInvariant() {
		return strconv.FormatInt(num, 10)
	}
	return p.printer.Sprint(num)
}

func (p FormatProvider) formatUnsigned(num uint64, format string) string {
	switch {
	case format == "x":
		return strconv.FormatUint(num, 16)
	case format == "X":
		return strings.ToUpper(strconv.FormatUint(num, 16))
	case len(format) > 0 && format[0] == '0':
		return fmt.Sprintf("%0*d", len(format), num)
	}
	if p.IsInvariant() {
		return strconv.FormatUint(num, 10)
	}
	return p.printer.Sprint(num)
}

func (p FormatProvider) formatFloat(num float64, bitSize int, format string) string {
	verb := strings.ToUpper(format)
	precision := -1
	if len(verb) > 1 {
		if n, err := strconv.Atoi(verb[1:]); err == nil {
			precision = n
			verb = verb[:1]
		}
	}

	switch verb {
	case "F", "N":
		if p.IsInvariant() {
			return strconv.FormatFloat(num, 'f', precision, bitSize)
		}
		if precision >= 0 {
			return p.printer.Sprint(number.Decimal(num, number.Scale(precision)))
		}
		return p.printer.Sprint(number.Decimal(num))
	case "E":
		return strconv.FormatFloat(num, 'e', precision, bitSize)
	case "P":
		if precision < 0 {
			precision = 2
		}
		if p.IsInvariant() {
			return strconv.FormatFloat(num*100, 'f', precision, bitSize) + "%"
		}
		return p.printer.Sprint(number.Percent(num, number.Scale(precision)))
	case "G":
		return strconv.FormatFloat(num, 'g', precision, bitSize)
	}

	if p.IsInvariant() {
		return strconv.FormatFloat(num, 'f', -1, bitSize)
	}
	return p.printer.Sprint(num)
}

// timeLayoutTokens maps .NET custom date and time specifiers to Go layouts,
// longest first so that "yyyy" wins over "yy".
var timeLayoutTokens = []struct {
	from, to string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"dd", "02"},
	{"d", "2"},
	{"HH", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"fffffff", "0000000"},
	{"ffffff", "000000"},
	{"fff", "000"},
	{"ff", "00"},
	{"f", "0"},
	{"tt", "PM"},
	{"zzz", "-07:00"},
	{"zz", "-07"},
}

// convertTimeLayout converts a .NET-style layout to a Go layout in one pass,
// so replaced output is never matched again.
func convertTimeLayout(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, t := range timeLayoutTokens {
			if strings.HasPrefix(format[i:], t.from) {
				b.WriteString(t.to)
				i += len(t.from)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}
