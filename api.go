// Package isotope represents the isotopic composition of physical materials
// and renders it into the text encodings read by nuclear transport and
// depletion codes.
//
// # Nuclide identity
//
// Every nuclide is canonicalized to a Nuc, an integer in ZZZAAAMMMM form:
//
//	Z*10,000,000 + A*10,000 + M
//
// Numeric order is canonical order (atomic number, then mass number, then
// metastable state) and every consumer iterates in that order. A mass number
// of zero denotes a natural element. Canonicalize accepts integers, ZZAAA
// integers, and names such as "U235", "u-235", "Am242m", "235U" or "U-nat":
//
//	u235, _ := isotope.Canonicalize("U235") // 922350000
//	name, _ := isotope.Render(u235, isotope.ConventionName) // "U235"
//
// # Compositions and materials
//
// A Composition maps nuclides to non-negative quantities. A Material owns a
// copy of one plus bulk metadata (mass, density, name, atoms per molecule):
//
//	comp, _ := isotope.CompositionOf(
//	    isotope.Entry{Nuc: 922350000, Quantity: 0.04},
//	    isotope.Entry{Nuc: 922380000, Quantity: 0.96},
//	)
//	table, _ := nucdata.Default()
//	fuel, _ := isotope.New(comp, isotope.WithName("LEU"), isotope.WithProvider(table))
//	w := fuel.MassFraction(922350000)      // 0.04
//	x, _ := fuel.AtomFraction(922350000)   // needs atomic masses
//
// Materials never normalize implicitly; NormalizedComposition is computed on
// demand and cached until the next mutation.
//
// # Formats
//
// A Format renders a Material into an external encoding. Implementations
// live in sub-packages and register themselves by name:
//
//   - mcnp - MCNP material cards
//   - alara - ALARA material definitions
//   - openmc - OpenMC material XML
//   - text - plain key/value text, readable with text.Parse
//
// # Codecs
//
// Material documents can be stored with any Codec. Implementations are
// available as sub-packages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrInvalidNuclide,
// ErrEmptyComposition, ErrValidation, ErrDataUnavailable, ErrInvalidArgument,
// ErrMarshal, ErrUnmarshal). Use errors.Is to test for them.
package isotope

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
