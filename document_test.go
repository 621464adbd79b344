package isotope

import (
	"errors"
	"testing"
)

func TestNewDocument(t *testing.T) {
	m := sampleMaterial(t, WithName("sample"), WithDensity(2),
		WithMetadata(map[string]string{"z": "last", "a": "first"}))

	doc := NewDocument(m)
	if doc.Name != "sample" || doc.Mass != 1 || doc.Density != 2 || doc.AtomsPerMolecule != Unset {
		t.Errorf("bulk fields = %+v", doc)
	}
	if len(doc.Metadata) != 2 || doc.Metadata[0].Key != "a" {
		t.Errorf("Metadata = %v, want sorted by key", doc.Metadata)
	}
	if len(doc.Nuclides) != 9 {
		t.Fatalf("len(Nuclides) = %d, want 9", len(doc.Nuclides))
	}
	if doc.Nuclides[0].Nuc != "H1" || doc.Nuclides[8].Nuc != "Cm244" {
		t.Errorf("Nuclides not in canonical order: %v", doc.Nuclides)
	}
	if doc.Nuclides[0].Quantity != 1 {
		t.Errorf("Quantity = %v, want the raw weight 1", doc.Nuclides[0].Quantity)
	}
}

func TestDocument_Material(t *testing.T) {
	doc := Document{
		Name:             "mix",
		Mass:             3,
		Density:          Unset,
		AtomsPerMolecule: Unset,
		Metadata:         []Attr{{Key: "k", Value: "v"}},
		Nuclides: []Nuclide{
			{Nuc: "U-235", Quantity: 1},
			{Nuc: "922380000", Quantity: 3},
		},
	}
	p := &tableProvider{}
	m, err := doc.Material(WithProvider(p))
	if err != nil {
		t.Fatalf("Material() error: %v", err)
	}
	if m.Name() != "mix" || m.Mass() != 3 || m.Provider() != p {
		t.Errorf("Material() = name %q mass %v provider %v", m.Name(), m.Mass(), m.Provider())
	}
	if v, _ := m.Metadata("k"); v != "v" {
		t.Errorf("Metadata(k) = %q, want v", v)
	}
	if got := m.MassFraction(922380000); got != 0.75 {
		t.Errorf("MassFraction(U238) = %v, want 0.75", got)
	}
}

func TestDocument_MaterialErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		target error
	}{
		{"bad nuclide", Document{Mass: 1, Density: Unset, AtomsPerMolecule: Unset, Nuclides: []Nuclide{{Nuc: "Zz1", Quantity: 1}}}, ErrInvalidNuclide},
		{"negative quantity", Document{Mass: 1, Density: Unset, AtomsPerMolecule: Unset, Nuclides: []Nuclide{{Nuc: "H1", Quantity: -1}}}, ErrValidation},
		{"negative mass", Document{Mass: -1, Density: Unset, AtomsPerMolecule: Unset}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.doc.Material(); !errors.Is(err, tt.target) {
				t.Errorf("Material() error = %v, want %v", err, tt.target)
			}
		})
	}
}

// failingCodec rejects everything.
type failingCodec struct{}

func (failingCodec) ContentType() string { return "application/x-fail" }
func (failingCodec) Marshal(any) ([]byte, error) { return nil, errors.New("no") }
func (failingCodec) Unmarshal([]byte, any) error { return errors.New("no") }

func TestMarshal_CodecErrors(t *testing.T) {
	m := sampleMaterial(t)

	_, err := Marshal(failingCodec{}, m)
	var ce *CodecError
	if !errors.As(err, &ce) || !errors.Is(err, ErrMarshal) {
		t.Errorf("Marshal() error = %v, want CodecError wrapping ErrMarshal", err)
	}

	if _, err := Unmarshal(failingCodec{}, []byte("x")); !errors.Is(err, ErrUnmarshal) {
		t.Errorf("Unmarshal() error = %v, want ErrUnmarshal", err)
	}
}
