// Package bson provides a BSON codec for material documents.
package bson

import (
	"github.com/zoobzio/isotope"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements isotope.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec. BSON documents must be structs or maps at the
// top level.
func New() isotope.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
