package isotope

import "slices"

// Avogadro is the Avogadro constant in atoms per mole.
const Avogadro = 6.02214076e23

// barnCm2 converts atoms/cm³ to atoms/(barn·cm).
const barnCm2 = 1e-24

// AtomFractions converts the normalized mass fractions to atom fractions
// using the material's DataProvider.
func (m *Material) AtomFractions() (*Composition, error) {
	norm, err := m.normalizedView()
	if err != nil {
		return nil, err
	}
	masses, err := atomicMasses(m.provider, norm)
	if err != nil {
		return nil, err
	}
	moles := &Composition{quantities: make(map[Nuc]float64, norm.Len())}
	for n, w := range norm.All() {
		moles.quantities[n] = w / masses[n]
	}
	return moles.Normalize()
}

// AtomFraction returns the atom fraction of n, zero when absent. It fails if
// the atomic mass of any present nuclide cannot be resolved.
func (m *Material) AtomFraction(n Nuc) (float64, error) {
	atoms, err := m.AtomFractions()
	if err != nil {
		return 0, err
	}
	q, _ := atoms.Get(n)
	return q, nil
}

// FromAtomFractions creates a Material from atom fractions. A DataProvider
// must be supplied through opts.
func FromAtomFractions(atoms *Composition, opts ...Option) (*Material, error) {
	m, err := New(&Composition{}, opts...)
	if err != nil {
		return nil, err
	}
	norm, err := atoms.Normalize()
	if err != nil {
		return nil, err
	}
	masses, err := atomicMasses(m.provider, norm)
	if err != nil {
		return nil, err
	}
	comp := &Composition{quantities: make(map[Nuc]float64, norm.Len())}
	for n, x := range norm.All() {
		comp.quantities[n] = x * masses[n]
	}
	if m.comp, err = comp.Normalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// MolecularMass returns the mean atomic mass 1/Σ(w/M) in g/mol, multiplied
// by the atoms per molecule when that is set.
func (m *Material) MolecularMass() (float64, error) {
	norm, err := m.normalizedView()
	if err != nil {
		return 0, err
	}
	masses, err := atomicMasses(m.provider, norm)
	if err != nil {
		return 0, err
	}
	var inv float64
	for n, w := range norm.All() {
		inv += w / masses[n]
	}
	mol := 1 / inv
	if m.atomsPerMolecule >= 0 {
		mol *= m.atomsPerMolecule
	}
	return mol, nil
}

// AtomDensities returns the number density of each nuclide in atoms/(barn·cm).
// The density must be set.
func (m *Material) AtomDensities() (*Composition, error) {
	if m.density == Unset {
		return nil, InvalidArgument("density is not set")
	}
	norm, err := m.normalizedView()
	if err != nil {
		return nil, err
	}
	masses, err := atomicMasses(m.provider, norm)
	if err != nil {
		return nil, err
	}
	out := &Composition{quantities: make(map[Nuc]float64, norm.Len())}
	for n, w := range norm.All() {
		out.quantities[n] = w * m.density * Avogadro / masses[n] * barnCm2
	}
	return out, nil
}

// ExpandElements replaces natural-element pseudo-ids with their naturally
// occurring isotopes, mass-weighted by abundance. The DataProvider must be
// an AbundanceProvider.
func (m *Material) ExpandElements() error {
	ap, ok := m.provider.(AbundanceProvider)
	expanded := m.comp.Clone()
	for n, w := range m.comp.All() {
		if !n.Natural() {
			continue
		}
		if !ok {
			return &DataError{Quantity: "natural abundance"}
		}
		abundances, err := ap.NaturalAbundances(n.Z())
		if err != nil {
			return err
		}
		isotopes := &Composition{quantities: abundances}
		masses, err := atomicMasses(ap, isotopes)
		if err != nil {
			return err
		}
		var total float64
		for iso, x := range isotopes.All() {
			total += x * masses[iso]
		}
		if total == 0 {
			return MissingData(n, "natural abundance")
		}
		expanded.Delete(n)
		for iso, x := range isotopes.All() {
			expanded.quantities[iso] += w * x * masses[iso] / total
		}
	}
	m.comp = expanded
	m.invalidate()
	return nil
}

// CollapseElements sums the isotopes of each listed element into its
// natural-element pseudo-id. With no arguments every element is collapsed.
func (m *Material) CollapseElements(zs ...int) error {
	collapsed := &Composition{quantities: make(map[Nuc]float64, m.comp.Len())}
	for n, w := range m.comp.All() {
		if len(zs) > 0 && !slices.Contains(zs, n.Z()) {
			collapsed.quantities[n] += w
			continue
		}
		elem, err := Element(n.Z())
		if err != nil {
			return err
		}
		collapsed.quantities[elem] += w
	}
	m.comp = collapsed
	m.invalidate()
	return nil
}

// SubMaterial returns the part of m made of nuclides keep accepts. Its mass
// is m's mass times the selected mass fraction.
func (m *Material) SubMaterial(keep func(Nuc) bool) (*Material, error) {
	norm, err := m.normalizedView()
	if err != nil {
		return nil, err
	}
	sub := norm.Filter(keep)
	out := m.Clone()
	out.comp = sub
	out.mass = m.mass * sub.Sum()
	return out, nil
}

// SubElements keeps the nuclides of the listed elements.
func (m *Material) SubElements(zs ...int) (*Material, error) {
	return m.SubMaterial(func(n Nuc) bool { return slices.Contains(zs, n.Z()) })
}

// SubRange keeps nuclides in [lo, hi).
func (m *Material) SubRange(lo, hi Nuc) (*Material, error) {
	return m.SubMaterial(func(n Nuc) bool { return n >= lo && n < hi })
}

// SubActinides keeps elements with Z >= 89.
func (m *Material) SubActinides() (*Material, error) {
	return m.SubMaterial(func(n Nuc) bool { return n.Z() >= 89 })
}

// SubTransuranics keeps elements with Z >= 93.
func (m *Material) SubTransuranics() (*Material, error) {
	return m.SubMaterial(func(n Nuc) bool { return n.Z() >= 93 })
}
