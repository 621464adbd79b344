// Package json provides a JSON codec for material documents.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/isotope"
)

// jsonCodec implements isotope.Codec for JSON.
type jsonCodec struct {
	indent string
}

// New returns a JSON codec writing two-space indented output.
func New() isotope.Codec {
	return &jsonCodec{indent: "  "}
}

// Compact returns a JSON codec writing single-line output.
func Compact() isotope.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON followed by a newline.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON data into v, rejecting unknown fields.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
