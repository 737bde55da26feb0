package log4net

import (
	"github.com/willibrandon/mtlog-log4net/internal/xmlwriter"
)

// xmlOutput applies the namespace and CDATA policies on top of the writer.
type xmlOutput struct {
	w       *xmlwriter.Writer
	options *Options
}

func (o xmlOutput) startElement(local string) {
	name := xmlwriter.Name{Local: local}
	if ns := o.options.namespace; ns != nil {
		name.Prefix = ns.Prefix
		name.Space = ns.URI
	}
	o.w.StartElement(name)
}

func (o xmlOutput) attribute(name, value string) {
	o.w.Attribute(name, value)
}

func (o xmlOutput) endElement() {
	o.w.EndElement()
}

// writeData writes a data element for one flattened property.
func (o xmlOutput) writeData(entry flatEntry) {
	o.startElement("data")
	o.attribute("name", entry.name)
	if entry.value != nil {
		o.attribute("value", *entry.value)
	}
	o.endElement()
}

// writeContent writes an element holding text, as CDATA when the mode asks for it.
func (o xmlOutput) writeContent(local, content string) {
	o.startElement(local)
	switch o.options.cDataMode {
	case CDataAlways:
		o.w.CData(content)
	case CDataIfNeeded:
		if xmlwriter.NeedsEscaping(content) {
			o.w.CData(content)
		} else {
			o.w.Text(content)
		}
	default:
		o.w.Text(content)
	}
	o.endElement()
}
