// Package testing provides test utilities for isotope.
package testing

import (
	"testing"

	"github.com/zoobzio/isotope"
)

// SampleNucs are the nine nuclides of the reference composition, in
// canonical order: H1, O16, Tm169, U235, U238, Pu239, Pu241, Am242, Cm244.
var SampleNucs = []isotope.Nuc{
	10010000,
	80160000,
	691690000,
	922350000,
	922380000,
	942390000,
	942410000,
	952420000,
	962440000,
}

// SampleComposition returns the reference composition: every SampleNucs
// entry with raw weight 1.0.
func SampleComposition(t testing.TB) *isotope.Composition {
	t.Helper()
	entries := make([]isotope.Entry, 0, len(SampleNucs))
	for _, n := range SampleNucs {
		entries = append(entries, isotope.Entry{Nuc: n, Quantity: 1.0})
	}
	comp, err := isotope.CompositionOf(entries...)
	if err != nil {
		t.Fatalf("CompositionOf() error: %v", err)
	}
	return comp
}

// SampleMaterial wraps SampleComposition in a Material.
func SampleMaterial(t testing.TB, opts ...isotope.Option) *isotope.Material {
	t.Helper()
	m, err := isotope.New(SampleComposition(t), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

// LEU returns 4% enriched uranium by mass, named "leu", with density 10.4
// and the StubProvider attached.
func LEU(t testing.TB) *isotope.Material {
	t.Helper()
	comp, err := isotope.CompositionOf(
		isotope.Entry{Nuc: 922350000, Quantity: 0.04},
		isotope.Entry{Nuc: 922380000, Quantity: 0.96},
	)
	if err != nil {
		t.Fatalf("CompositionOf() error: %v", err)
	}
	m, err := isotope.New(comp,
		isotope.WithName("leu"),
		isotope.WithDensity(10.4),
		isotope.WithProvider(StubProvider()),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

// Provider is an in-memory DataProvider for tests.
type Provider struct {
	Masses     map[isotope.Nuc]float64
	Abundances map[int]map[isotope.Nuc]float64
}

// AtomicMass returns the tabulated mass of n.
func (p *Provider) AtomicMass(n isotope.Nuc) (float64, error) {
	m, ok := p.Masses[n]
	if !ok {
		return 0, isotope.MissingData(n, "atomic mass")
	}
	return m, nil
}

// NaturalAbundances returns the tabulated abundances of element z.
func (p *Provider) NaturalAbundances(z int) (map[isotope.Nuc]float64, error) {
	ab, ok := p.Abundances[z]
	if !ok {
		elem, _ := isotope.Element(z)
		return nil, isotope.MissingData(elem, "natural abundance")
	}
	out := make(map[isotope.Nuc]float64, len(ab))
	for n, x := range ab {
		out[n] = x
	}
	return out, nil
}

// StubProvider returns a Provider with round-number masses for the
// SampleNucs (the mass number) and natural uranium abundances of 1% U235
// and 99% U238.
func StubProvider() *Provider {
	p := &Provider{
		Masses: make(map[isotope.Nuc]float64, len(SampleNucs)),
		Abundances: map[int]map[isotope.Nuc]float64{
			92: {922350000: 0.01, 922380000: 0.99},
		},
	}
	for _, n := range SampleNucs {
		p.Masses[n] = float64(n.A())
	}
	return p
}
