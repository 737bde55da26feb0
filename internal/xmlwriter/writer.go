// Package xmlwriter implements a small streaming writer for XML fragments.
//
// It supports prefixed namespaces, CDATA sections, configurable indentation
// and newline characters, and suppressing namespace declarations for
// fragments that are embedded in a document declaring them once.
package xmlwriter

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// ErrNoOpenElement is returned when an operation needs an open element.
var ErrNoOpenElement = errors.New("xmlwriter: no open element")

// ErrAttributeAfterContent is returned when an attribute is written after the
// start tag of the current element has been closed.
var ErrAttributeAfterContent = errors.New("xmlwriter: attribute written after element content")

// Name is a possibly namespace-qualified element name.
type Name struct {
	Prefix string
	Local  string
	Space  string
}

func (n Name) String() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Settings control the layout of the written fragment.
type Settings struct {
	// Indent is written once per nesting level before child elements.
	// An empty Indent disables indentation.
	Indent string

	// NewLine separates indented elements.
	NewLine string

	// OmitNamespaceDeclarations keeps xmlns attributes out of the output
	// while still tracking the namespaces in scope.
	OmitNamespaceDeclarations bool
}

type element struct {
	name        string
	namespaces  map[string]string
	hasChildren bool
	hasText     bool
}

// Writer buffers an XML fragment until Flush writes it to the underlying writer.
// A Writer is not safe for concurrent use.
type Writer struct {
	out      io.Writer
	settings Settings
	buf      bytes.Buffer
	stack    []*element
	startTag bool
	pending  []Name
	err      error
}

// New returns a Writer writing to w.
func New(w io.Writer, settings Settings) *Writer {
	return &Writer{out: w, settings: settings}
}

// Reset discards any buffered output and state and targets w.
func (x *Writer) Reset(w io.Writer) {
	x.out = w
	x.buf.Reset()
	x.stack = x.stack[:0]
	x.startTag = false
	x.pending = x.pending[:0]
	x.err = nil
}

// StartElement opens a new element. A namespaced name is declared on the
// element unless its prefix is already bound to the same namespace.
func (x *Writer) StartElement(name Name) {
	if x.err != nil {
		return
	}
	x.closeStartTag()

	parent := x.current()
	if parent != nil {
		parent.hasChildren = true
	}
	if parent == nil || !parent.hasText {
		x.writeIndent(len(x.stack))
	}

	qualified := name.String()
	x.buf.WriteByte('<')
	x.buf.WriteString(qualified)

	el := &element{name: qualified}
	if name.Space != "" && x.lookupNamespace(name.Prefix) != name.Space {
		el.namespaces = map[string]string{name.Prefix: name.Space}
		if !x.settings.OmitNamespaceDeclarations {
			x.pending = append(x.pending, name)
		}
	}
	x.stack = append(x.stack, el)
	x.startTag = true
}

// Attribute writes an attribute on the element most recently started.
func (x *Writer) Attribute(name, value string) {
	if x.err != nil {
		return
	}
	if !x.startTag {
		x.err = ErrAttributeAfterContent
		return
	}
	x.writeAttribute(name, value)
}

// Text writes escaped character data. Characters XML cannot represent are
// written as U+FFFD, here and in attributes and CDATA sections.
func (x *Writer) Text(s string) {
	if !x.beginContent() {
		return
	}
	escapeText(&x.buf, s)
}

// CData writes s inside a CDATA section. Occurrences of "]]>" are split
// across two sections.
func (x *Writer) CData(s string) {
	if !x.beginContent() {
		return
	}
	x.buf.WriteString("<![CDATA[")
	x.buf.WriteString(strings.ReplaceAll(Sanitize(s), "]]>", "]]]]><![CDATA[>"))
	x.buf.WriteString("]]>")
}

// EndElement closes the current element. Elements without content are
// written in the self-closing form.
func (x *Writer) EndElement() {
	if x.err != nil {
		return
	}
	el := x.current()
	if el == nil {
		x.err = ErrNoOpenElement
		return
	}

	if x.startTag {
		x.writeDeclarations()
		x.buf.WriteString(" />")
		x.startTag = false
	} else {
		if el.hasChildren && !el.hasText {
			x.writeIndent(len(x.stack) - 1)
		}
		x.buf.WriteString("</")
		x.buf.WriteString(el.name)
		x.buf.WriteByte('>')
	}
	x.stack = x.stack[:len(x.stack)-1]
}

// Flush closes any open elements and writes the buffered fragment.
func (x *Writer) Flush() error {
	for x.err == nil && len(x.stack) > 0 {
		x.EndElement()
	}
	if x.err != nil {
		return x.err
	}
	_, err := x.out.Write(x.buf.Bytes())
	x.buf.Reset()
	return err
}

// Err returns the first error recorded by the writer.
func (x *Writer) Err() error {
	return x.err
}

func (x *Writer) current() *element {
	if len(x.stack) == 0 {
		return nil
	}
	return x.stack[len(x.stack)-1]
}

func (x *Writer) lookupNamespace(prefix string) string {
	for i := len(x.stack) - 1; i >= 0; i-- {
		if space, ok := x.stack[i].namespaces[prefix]; ok {
			return space
		}
	}
	return ""
}

func (x *Writer) beginContent() bool {
	if x.err != nil {
		return false
	}
	el := x.current()
	if el == nil {
		x.err = ErrNoOpenElement
		return false
	}
	x.closeStartTag()
	el.hasText = true
	return true
}

func (x *Writer) closeStartTag() {
	if !x.startTag {
		return
	}
	x.writeDeclarations()
	x.buf.WriteByte('>')
	x.startTag = false
}

func (x *Writer) writeDeclarations() {
	for _, name := range x.pending {
		if name.Prefix == "" {
			x.writeAttribute("xmlns", name.Space)
		} else {
			x.writeAttribute("xmlns:"+name.Prefix, name.Space)
		}
	}
	x.pending = x.pending[:0]
}

func (x *Writer) writeAttribute(name, value string) {
	x.buf.WriteByte(' ')
	x.buf.WriteString(name)
	x.buf.WriteString(`="`)
	escapeAttribute(&x.buf, value)
	x.buf.WriteByte('"')
}

func (x *Writer) writeIndent(depth int) {
	if x.settings.Indent == "" {
		return
	}
	if x.buf.Len() > 0 {
		x.buf.WriteString(x.settings.NewLine)
	}
	for i := 0; i < depth; i++ {
		x.buf.WriteString(x.settings.Indent)
	}
}
