package isotope

import "testing"

// sampleNucs are H1, O16, Tm169, U235, U238, Pu239, Pu241, Am242, Cm244.
var sampleNucs = []Nuc{
	10010000, 80160000, 691690000, 922350000, 922380000,
	942390000, 942410000, 952420000, 962440000,
}

func sampleMaterial(t *testing.T, opts ...Option) *Material {
	t.Helper()
	comp := &Composition{}
	for _, n := range sampleNucs {
		if err := comp.Set(n, 1.0); err != nil {
			t.Fatalf("Set(%d) error: %v", n, err)
		}
	}
	m, err := New(comp, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func mustComposition(t *testing.T, q map[Nuc]float64) *Composition {
	t.Helper()
	c, err := NewComposition(q)
	if err != nil {
		t.Fatalf("NewComposition() error: %v", err)
	}
	return c
}

// tableProvider uses the mass number as atomic mass unless overridden.
type tableProvider struct {
	masses     map[Nuc]float64
	abundances map[int]map[Nuc]float64
}

func (p *tableProvider) AtomicMass(n Nuc) (float64, error) {
	if m, ok := p.masses[n]; ok {
		return m, nil
	}
	if n.Natural() {
		return 0, MissingData(n, "atomic mass")
	}
	return float64(n.A()), nil
}

func (p *tableProvider) NaturalAbundances(z int) (map[Nuc]float64, error) {
	ab, ok := p.abundances[z]
	if !ok {
		elem, _ := Element(z)
		return nil, MissingData(elem, "natural abundance")
	}
	return ab, nil
}

// massOnly hides NaturalAbundances.
type massOnly struct{ DataProvider }
