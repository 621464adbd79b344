package isotope

import (
	"context"
	"encoding/xml"
	"fmt"
)

// Document is the codec-neutral wire shape of a Material. Entries are kept
// as ordered slices so every codec, including XML and BSON, encodes them
// deterministically.
type Document struct {
	XMLName          xml.Name  `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"material"`
	Name             string    `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty" bson:"name,omitempty" xml:"name,attr,omitempty"`
	Mass             float64   `json:"mass" yaml:"mass" msgpack:"mass" bson:"mass" xml:"mass,attr"`
	Density          float64   `json:"density" yaml:"density" msgpack:"density" bson:"density" xml:"density,attr"`
	AtomsPerMolecule float64   `json:"atoms_per_molecule" yaml:"atoms_per_molecule" msgpack:"atoms_per_molecule" bson:"atoms_per_molecule" xml:"atoms_per_molecule,attr"`
	Metadata         []Attr    `json:"metadata,omitempty" yaml:"metadata,omitempty" msgpack:"metadata,omitempty" bson:"metadata,omitempty" xml:"meta"`
	Nuclides         []Nuclide `json:"nuclides" yaml:"nuclides" msgpack:"nuclides" bson:"nuclides" xml:"nuclide"`
}

// Attr is a metadata key/value pair.
type Attr struct {
	Key   string `json:"key" yaml:"key" msgpack:"key" bson:"key" xml:"key,attr"`
	Value string `json:"value" yaml:"value" msgpack:"value" bson:"value" xml:"value,attr"`
}

// Nuclide is one composition entry. Nuc holds the name form ("U235"); any
// form Canonicalize accepts is read back.
type Nuclide struct {
	Nuc      string  `json:"nuc" yaml:"nuc" msgpack:"nuc" bson:"nuc" xml:"nuc,attr"`
	Quantity float64 `json:"quantity" yaml:"quantity" msgpack:"quantity" bson:"quantity" xml:"quantity,attr"`
}

// NewDocument captures m's raw composition and metadata.
func NewDocument(m *Material) Document {
	doc := Document{
		Name:             m.name,
		Mass:             m.mass,
		Density:          m.density,
		AtomsPerMolecule: m.atomsPerMolecule,
		Nuclides:         make([]Nuclide, 0, m.comp.Len()),
	}
	for _, key := range m.MetadataKeys() {
		doc.Metadata = append(doc.Metadata, Attr{Key: key, Value: m.metadata[key]})
	}
	for n, q := range m.comp.All() {
		doc.Nuclides = append(doc.Nuclides, Nuclide{Nuc: n.String(), Quantity: q})
	}
	return doc
}

// Material rebuilds a Material from the document. Extra options (typically
// WithProvider) are applied after the document's own fields.
func (d Document) Material(opts ...Option) (*Material, error) {
	comp := &Composition{}
	for i, entry := range d.Nuclides {
		n, err := Canonicalize(entry.Nuc)
		if err != nil {
			return nil, fmt.Errorf("nuclide %d: %w", i, err)
		}
		if err := comp.Set(n, entry.Quantity); err != nil {
			return nil, fmt.Errorf("nuclide %d: %w", i, err)
		}
	}
	md := make(map[string]string, len(d.Metadata))
	for _, a := range d.Metadata {
		md[a.Key] = a.Value
	}
	base := []Option{
		WithName(d.Name),
		WithMass(d.Mass),
		WithDensity(d.Density),
		WithAtomsPerMolecule(d.AtomsPerMolecule),
		WithMetadata(md),
	}
	return New(comp, append(base, opts...)...)
}

// Marshal encodes m as a Document with c.
func Marshal(c Codec, m *Material) ([]byte, error) {
	data, err := c.Marshal(NewDocument(m))
	if err != nil {
		err = newCodecError(ErrMarshal, err)
	}
	emitMarshalComplete(context.Background(), c.ContentType(), m.name, len(data), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Unmarshal decodes a Document with c and builds its Material.
func Unmarshal(c Codec, data []byte, opts ...Option) (*Material, error) {
	var doc Document
	if err := c.Unmarshal(data, &doc); err != nil {
		err = newCodecError(ErrUnmarshal, err)
		emitUnmarshalComplete(context.Background(), c.ContentType(), len(data), err)
		return nil, err
	}
	m, err := doc.Material(opts...)
	emitUnmarshalComplete(context.Background(), c.ContentType(), len(data), err)
	return m, err
}
