package isotope

import (
	"context"
	"maps"
	"math"
	"slices"
	"sync"
)

// Material is a composition plus bulk physical metadata.
//
// A Material exclusively owns its Composition. Mutators (Normalize,
// SetNuclide, DeleteNuclide, Scale, ExpandElements, CollapseElements and the
// Set* methods) are not safe for concurrent use; callers must synchronize
// them. Concurrent reads of an unmutated Material are safe.
type Material struct {
	comp             *Composition
	mass             float64
	density          float64
	name             string
	atomsPerMolecule float64
	metadata         map[string]string
	provider         DataProvider

	// Normalized composition cache, cleared by every mutator.
	cacheMu    sync.Mutex
	normalized *Composition
}

// Option configures a Material at construction.
type Option func(*Material)

// WithMass sets the total mass (default 1.0).
func WithMass(mass float64) Option {
	return func(m *Material) { m.mass = mass }
}

// WithDensity sets the density in g/cm³ (default -1, unset).
func WithDensity(density float64) Option {
	return func(m *Material) { m.density = density }
}

// WithName sets the material label.
func WithName(name string) Option {
	return func(m *Material) { m.name = name }
}

// WithAtomsPerMolecule sets the number of atoms per molecule (default -1, unset).
func WithAtomsPerMolecule(apm float64) Option {
	return func(m *Material) { m.atomsPerMolecule = apm }
}

// WithMetadata merges key/value pairs into the material metadata.
func WithMetadata(md map[string]string) Option {
	return func(m *Material) { maps.Copy(m.metadata, md) }
}

// WithProvider sets the DataProvider used for basis conversions.
func WithProvider(p DataProvider) Option {
	return func(m *Material) { m.provider = p }
}

// Unset is the sentinel for optional bulk quantities (density, atoms per molecule).
const Unset = -1.0

// New creates a Material from a copy of comp. The composition is not normalized.
func New(comp *Composition, opts ...Option) (*Material, error) {
	m := &Material{
		comp:             comp.Clone(),
		mass:             1.0,
		density:          Unset,
		atomsPerMolecule: Unset,
		metadata:         make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := checkQuantity("mass", 0, m.mass); err != nil {
		return nil, err
	}
	if err := checkOptional("density", m.density); err != nil {
		return nil, err
	}
	if err := checkOptional("atoms per molecule", m.atomsPerMolecule); err != nil {
		return nil, err
	}
	return m, nil
}

// checkOptional accepts Unset or any finite non-negative value.
func checkOptional(field string, v float64) error {
	if v == Unset {
		return nil
	}
	return checkQuantity(field, 0, v)
}

// Composition returns a copy of the raw composition.
func (m *Material) Composition() *Composition {
	return m.comp.Clone()
}

// Mass returns the total mass.
func (m *Material) Mass() float64 { return m.mass }

// Density returns the density in g/cm³, or Unset.
func (m *Material) Density() float64 { return m.density }

// Name returns the material label.
func (m *Material) Name() string { return m.name }

// AtomsPerMolecule returns the atoms per molecule, or Unset.
func (m *Material) AtomsPerMolecule() float64 { return m.atomsPerMolecule }

// Provider returns the configured DataProvider, which may be nil.
func (m *Material) Provider() DataProvider { return m.provider }

// Len returns the number of nuclides.
func (m *Material) Len() int { return m.comp.Len() }

// Metadata returns the value stored under key.
func (m *Material) Metadata(key string) (string, bool) {
	v, ok := m.metadata[key]
	return v, ok
}

// MetadataKeys returns the metadata keys in sorted order.
func (m *Material) MetadataKeys() []string {
	return slices.Sorted(maps.Keys(m.metadata))
}

// SetMetadata stores a metadata value.
func (m *Material) SetMetadata(key, value string) {
	m.metadata[key] = value
}

// SetName replaces the material label.
func (m *Material) SetName(name string) { m.name = name }

// SetProvider replaces the DataProvider.
func (m *Material) SetProvider(p DataProvider) { m.provider = p }

// SetMass replaces the total mass.
func (m *Material) SetMass(mass float64) error {
	if err := checkQuantity("mass", 0, mass); err != nil {
		return err
	}
	m.mass = mass
	return nil
}

// SetDensity replaces the density. Unset clears it.
func (m *Material) SetDensity(density float64) error {
	if err := checkOptional("density", density); err != nil {
		return err
	}
	m.density = density
	return nil
}

// NormalizedComposition returns the composition scaled to sum to one.
// The result is computed once and reused until the composition changes.
func (m *Material) NormalizedComposition() (*Composition, error) {
	norm, err := m.normalizedView()
	if err != nil {
		return nil, err
	}
	return norm.Clone(), nil
}

// normalizedView returns the cached normalized composition without copying.
// Callers must not modify it.
func (m *Material) normalizedView() (*Composition, error) {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()
	if m.normalized != nil {
		return m.normalized, nil
	}
	norm, err := m.comp.Normalize()
	if err != nil {
		return nil, err
	}
	m.normalized = norm
	return norm, nil
}

func (m *Material) invalidate() {
	m.cacheMu.Lock()
	m.normalized = nil
	m.cacheMu.Unlock()
}

// MassFraction returns the normalized mass fraction of n. Absent nuclides
// and empty materials report zero.
func (m *Material) MassFraction(n Nuc) float64 {
	norm, err := m.normalizedView()
	if err != nil {
		return 0
	}
	q, _ := norm.Get(n)
	return q
}

// Normalize rescales the composition in place so it sums to one. Mass is unchanged.
func (m *Material) Normalize() error {
	norm, err := m.comp.Normalize()
	if err != nil {
		return err
	}
	m.comp = norm
	m.invalidate()
	emitNormalized(context.Background(), m.name, norm.Len())
	return nil
}

// SetNuclide inserts or replaces the raw quantity of n.
func (m *Material) SetNuclide(n Nuc, quantity float64) error {
	if err := m.comp.Set(n, quantity); err != nil {
		return err
	}
	m.invalidate()
	return nil
}

// DeleteNuclide removes n.
func (m *Material) DeleteNuclide(n Nuc) {
	m.comp.Delete(n)
	m.invalidate()
}

// Scale multiplies the mass by factor. Fractions are unaffected.
func (m *Material) Scale(factor float64) error {
	if err := checkQuantity("scale factor", 0, factor); err != nil {
		return err
	}
	m.mass *= factor
	return nil
}

// Add returns the mass-weighted sum of m and other. The result's mass is
// the sum of both masses and its composition holds per-nuclide masses.
func (m *Material) Add(other *Material) (*Material, error) {
	a, err := m.normalizedView()
	if err != nil {
		return nil, err
	}
	b, err := other.normalizedView()
	if err != nil {
		return nil, err
	}
	comp, err := a.Merge(b, m.mass, other.mass)
	if err != nil {
		return nil, err
	}
	return New(comp,
		WithMass(m.mass+other.mass),
		WithProvider(m.pickProvider(other)),
	)
}

// MixWith returns a unit-mass material that is selfMassFraction parts m and
// (1 - selfMassFraction) parts other, by mass. A side with zero weight is
// ignored entirely and may be empty.
func (m *Material) MixWith(other *Material, selfMassFraction float64) (*Material, error) {
	w := selfMassFraction
	if math.IsNaN(w) || w < 0 || w > 1 {
		return nil, InvalidArgument("mass fraction %v outside [0, 1]", w)
	}
	a, b := &Composition{}, &Composition{}
	var err error
	if w > 0 {
		if a, err = m.normalizedView(); err != nil {
			return nil, err
		}
	}
	if w < 1 {
		if b, err = other.normalizedView(); err != nil {
			return nil, err
		}
	}
	comp, err := a.Merge(b, w, 1-w)
	if err != nil {
		return nil, err
	}
	for n, q := range comp.quantities {
		if q == 0 {
			delete(comp.quantities, n)
		}
	}
	mixed, err := New(comp, WithProvider(m.pickProvider(other)))
	if err != nil {
		return nil, err
	}
	emitMixed(context.Background(), m.name, other.name, w, comp.Len())
	return mixed, nil
}

func (m *Material) pickProvider(other *Material) DataProvider {
	if m.provider != nil {
		return m.provider
	}
	return other.provider
}

// Clone returns a deep copy sharing only the DataProvider.
func (m *Material) Clone() *Material {
	return &Material{
		comp:             m.comp.Clone(),
		mass:             m.mass,
		density:          m.density,
		name:             m.name,
		atomsPerMolecule: m.atomsPerMolecule,
		metadata:         maps.Clone(m.metadata),
		provider:         m.provider,
	}
}
