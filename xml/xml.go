// Package xml provides an XML codec for material documents.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/isotope"
)

// xmlCodec implements isotope.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec writing an XML declaration and indented elements.
func New() isotope.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as an XML document.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
