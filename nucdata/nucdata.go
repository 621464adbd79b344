// Package nucdata provides an isotope.AbundanceProvider backed by a YAML
// table of atomic masses and natural abundances.
//
// The table maps nuclide names to masses in g/mol and element symbols to
// the atom fractions of their natural isotopes:
//
//	masses:
//	  U235: 235.0439301
//	  U238: 238.0507884
//	abundances:
//	  U: {U235: 0.007204, U238: 0.992742}
//
// Keys accept any form isotope.Canonicalize understands. A natural element
// without a tabulated mass gets the abundance-weighted mean of its isotopes.
package nucdata

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"sync"

	"github.com/zoobzio/isotope"
	"gopkg.in/yaml.v3"
)

//go:embed nucdata.yaml
var embeddedTable []byte

var (
	loadDefaultOnce  sync.Once
	defaultTable     *Table
	defaultLoadError error
)

// Table is an immutable nuclear data table. It is safe for concurrent use.
type Table struct {
	masses     map[isotope.Nuc]float64
	abundances map[int]map[isotope.Nuc]float64
	fallback   bool
}

// Option configures a Table.
type Option func(*Table)

// WithMassNumberFallback answers AtomicMass for untabulated nuclides with
// their mass number.
func WithMassNumberFallback() Option {
	return func(t *Table) { t.fallback = true }
}

type tableYAML struct {
	Masses     map[string]float64            `yaml:"masses"`
	Abundances map[string]map[string]float64 `yaml:"abundances"`
}

// Default returns the embedded table. It is parsed once per process.
func Default() (*Table, error) {
	loadDefaultOnce.Do(func() {
		defaultTable, defaultLoadError = parse(embeddedTable)
	})
	return defaultTable, defaultLoadError
}

// Load reads a table from r.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read nuclear data: %w", err)
	}
	return parse(data, opts...)
}

// Open reads a table from the file at path.
func Open(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nuclear data: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

func parse(data []byte, opts ...Option) (*Table, error) {
	var doc tableYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode nuclear data: %w", err)
	}

	t := &Table{
		masses:     make(map[isotope.Nuc]float64, len(doc.Masses)),
		abundances: make(map[int]map[isotope.Nuc]float64, len(doc.Abundances)),
	}
	for _, opt := range opts {
		opt(t)
	}

	for key, mass := range doc.Masses {
		n, err := isotope.Canonicalize(key)
		if err != nil {
			return nil, fmt.Errorf("masses: %w", err)
		}
		if !(mass > 0) {
			return nil, fmt.Errorf("masses: %s: %w: mass %v", key, isotope.ErrValidation, mass)
		}
		t.masses[n] = mass
	}

	for key, isotopes := range doc.Abundances {
		z := isotope.AtomicNumber(key)
		if z == 0 {
			return nil, fmt.Errorf("abundances: unknown element %q: %w", key, isotope.ErrInvalidNuclide)
		}
		comp := &isotope.Composition{}
		for name, x := range isotopes {
			n, err := isotope.Canonicalize(name)
			if err != nil {
				return nil, fmt.Errorf("abundances of %s: %w", key, err)
			}
			if n.Z() != z || n.Natural() {
				return nil, fmt.Errorf("abundances of %s: %w: %s is not an isotope of %s",
					key, isotope.ErrInvalidArgument, name, key)
			}
			if err := comp.Set(n, x); err != nil {
				return nil, fmt.Errorf("abundances of %s: %w", key, err)
			}
		}
		norm, err := comp.Normalize()
		if err != nil {
			return nil, fmt.Errorf("abundances of %s: %w", key, err)
		}
		t.abundances[z] = norm.Map()
	}

	// Derive natural-element masses last so they see every isotope mass.
	for z, isotopes := range t.abundances {
		elem, _ := isotope.Element(z)
		if _, ok := t.masses[elem]; ok {
			continue
		}
		var mass float64
		for n, x := range isotopes {
			m, ok := t.masses[n]
			if !ok {
				mass = 0
				break
			}
			mass += x * m
		}
		if mass > 0 {
			t.masses[elem] = mass
		}
	}
	return t, nil
}

// AtomicMass returns the atomic mass of n in g/mol.
func (t *Table) AtomicMass(n isotope.Nuc) (float64, error) {
	if m, ok := t.masses[n]; ok {
		return m, nil
	}
	if t.fallback && !n.Natural() && n.Valid() {
		return float64(n.A()), nil
	}
	return 0, isotope.MissingData(n, "atomic mass")
}

// NaturalAbundances returns the atom fractions of the natural isotopes of
// element z. The map is a copy.
func (t *Table) NaturalAbundances(z int) (map[isotope.Nuc]float64, error) {
	ab, ok := t.abundances[z]
	if !ok {
		elem, err := isotope.Element(z)
		if err != nil {
			return nil, err
		}
		return nil, isotope.MissingData(elem, "natural abundance")
	}
	return maps.Clone(ab), nil
}

// WithFallback returns a copy of t that answers untabulated nuclides with
// their mass number.
func (t *Table) WithFallback() *Table {
	return &Table{masses: t.masses, abundances: t.abundances, fallback: true}
}

// Len returns the number of tabulated masses, natural elements included.
func (t *Table) Len() int {
	return len(t.masses)
}
