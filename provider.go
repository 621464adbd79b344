package isotope

import (
	"errors"
	"fmt"
)

// DataProvider is a read-only source of nuclear data keyed by Nuc.
//
// Implementations must be safe for concurrent use. A missing value is
// reported as an error wrapping ErrDataUnavailable, typically a *DataError.
type DataProvider interface {
	// AtomicMass returns the atomic mass of n in g/mol.
	AtomicMass(n Nuc) (float64, error)
}

// AbundanceProvider additionally knows natural isotopic abundances.
type AbundanceProvider interface {
	DataProvider

	// NaturalAbundances returns the atom fractions of the naturally
	// occurring isotopes of element z. They sum to one.
	NaturalAbundances(z int) (map[Nuc]float64, error)
}

// MissingData returns a *DataError for quantity of n. Providers use it to
// report gaps in their tables.
func MissingData(n Nuc, quantity string) error {
	return &DataError{Nuc: n, Quantity: quantity}
}

// atomicMasses resolves the atomic mass of every nuclide in c.
func atomicMasses(p DataProvider, c *Composition) (map[Nuc]float64, error) {
	if p == nil {
		return nil, &DataError{Quantity: "atomic mass"}
	}
	masses := make(map[Nuc]float64, c.Len())
	for n := range c.All() {
		m, err := p.AtomicMass(n)
		if err != nil {
			if errors.Is(err, ErrDataUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: atomic mass of %s: %v", ErrDataUnavailable, n, err)
		}
		if m <= 0 {
			return nil, MissingData(n, "atomic mass")
		}
		masses[n] = m
	}
	return masses, nil
}
