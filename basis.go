package isotope

// Basis selects how fractions are expressed.
type Basis string

const (
	// BasisMass expresses fractions by mass.
	BasisMass Basis = "mass"

	// BasisAtom expresses fractions by number of atoms.
	BasisAtom Basis = "atom"
)

// validBases contains all valid fraction bases.
var validBases = map[Basis]bool{
	BasisMass: true,
	BasisAtom: true,
}

// IsValidBasis returns true if b is a known fraction basis.
func IsValidBasis(b Basis) bool {
	return validBases[b]
}

// Fractions returns m's normalized composition in basis b.
// Atom fractions need the material's DataProvider.
func (m *Material) Fractions(b Basis) (*Composition, error) {
	switch b {
	case BasisMass:
		return m.NormalizedComposition()
	case BasisAtom:
		return m.AtomFractions()
	}
	return nil, InvalidArgument("unknown basis %q", b)
}
