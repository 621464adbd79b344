package isotope

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// Epsilon is the relative tolerance used when comparing fractions.
const Epsilon = 1e-12

// Entry is a single nuclide quantity.
type Entry struct {
	Nuc      Nuc
	Quantity float64
}

// Composition maps nuclides to non-negative quantities (mass or atom
// fractions, or raw weights before normalization).
//
// Iteration always yields nuclides in ascending Nuc order. The zero value is
// an empty composition ready to use.
type Composition struct {
	quantities map[Nuc]float64
}

// NewComposition builds a Composition from a map, validating every entry.
func NewComposition(quantities map[Nuc]float64) (*Composition, error) {
	c := &Composition{quantities: make(map[Nuc]float64, len(quantities))}
	for _, n := range slices.Sorted(maps.Keys(quantities)) {
		if err := c.Set(n, quantities[n]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CompositionOf builds a Composition from entries. Later entries for the
// same nuclide replace earlier ones.
func CompositionOf(entries ...Entry) (*Composition, error) {
	c := &Composition{quantities: make(map[Nuc]float64, len(entries))}
	for _, e := range entries {
		if err := c.Set(e.Nuc, e.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Set inserts or replaces the quantity for n. On error the composition is unchanged.
func (c *Composition) Set(n Nuc, quantity float64) error {
	if !n.Valid() {
		return newNuclideError(int(n), "not a canonical id")
	}
	if err := checkQuantity("fraction", n, quantity); err != nil {
		return err
	}
	if c.quantities == nil {
		c.quantities = make(map[Nuc]float64)
	}
	c.quantities[n] = quantity
	return nil
}

// Get returns the quantity for n and whether it is present.
func (c *Composition) Get(n Nuc) (float64, bool) {
	if c == nil {
		return 0, false
	}
	q, ok := c.quantities[n]
	return q, ok
}

// Delete removes n.
func (c *Composition) Delete(n Nuc) {
	if c != nil {
		delete(c.quantities, n)
	}
}

// Len returns the number of nuclides.
func (c *Composition) Len() int {
	if c == nil {
		return 0
	}
	return len(c.quantities)
}

// Sum returns the total of all quantities.
func (c *Composition) Sum() float64 {
	var total float64
	for _, q := range c.All() {
		total += q
	}
	return total
}

// Normalize returns a new composition whose quantities sum to one.
func (c *Composition) Normalize() (*Composition, error) {
	total := c.Sum()
	if c.Len() == 0 || total == 0 {
		return nil, ErrEmptyComposition
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, newValidationError("sum", 0, total)
	}
	out := &Composition{quantities: make(map[Nuc]float64, c.Len())}
	for n, q := range c.All() {
		out.quantities[n] = q / total
	}
	return out, nil
}

// Scale returns a new composition with every quantity multiplied by factor.
func (c *Composition) Scale(factor float64) (*Composition, error) {
	if err := checkQuantity("scale factor", 0, factor); err != nil {
		return nil, err
	}
	out := &Composition{quantities: make(map[Nuc]float64, c.Len())}
	for n, q := range c.All() {
		out.quantities[n] = q * factor
	}
	return out, nil
}

// Merge returns wSelf*c + wOther*other over the union of both key sets.
func (c *Composition) Merge(other *Composition, wSelf, wOther float64) (*Composition, error) {
	if err := checkQuantity("merge weight", 0, wSelf); err != nil {
		return nil, err
	}
	if err := checkQuantity("merge weight", 0, wOther); err != nil {
		return nil, err
	}
	out := &Composition{quantities: make(map[Nuc]float64, c.Len()+other.Len())}
	for n, q := range c.All() {
		out.quantities[n] += wSelf * q
	}
	for n, q := range other.All() {
		out.quantities[n] += wOther * q
	}
	return out, nil
}

// Filter returns a new composition holding the nuclides keep accepts.
func (c *Composition) Filter(keep func(Nuc) bool) *Composition {
	out := &Composition{quantities: make(map[Nuc]float64)}
	for n, q := range c.All() {
		if keep(n) {
			out.quantities[n] = q
		}
	}
	return out
}

// Nucs returns the nuclides in ascending order.
func (c *Composition) Nucs() []Nuc {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.quantities))
}

// Entries returns the quantities in ascending nuclide order.
func (c *Composition) Entries() []Entry {
	entries := make([]Entry, 0, c.Len())
	for n, q := range c.All() {
		entries = append(entries, Entry{Nuc: n, Quantity: q})
	}
	return entries
}

// All iterates nuclides and quantities in ascending nuclide order.
func (c *Composition) All() iter.Seq2[Nuc, float64] {
	return func(yield func(Nuc, float64) bool) {
		for _, n := range c.Nucs() {
			if !yield(n, c.quantities[n]) {
				return
			}
		}
	}
}

// Map returns a copy of the underlying quantities.
func (c *Composition) Map() map[Nuc]float64 {
	if c == nil {
		return map[Nuc]float64{}
	}
	return maps.Clone(c.quantities)
}

// Clone returns a deep copy.
func (c *Composition) Clone() *Composition {
	out := &Composition{quantities: make(map[Nuc]float64, c.Len())}
	if c != nil {
		maps.Copy(out.quantities, c.quantities)
	}
	return out
}

// Equal reports whether both compositions hold the same nuclides with
// quantities within relative tolerance eps.
func (c *Composition) Equal(other *Composition, eps float64) bool {
	if c.Len() != other.Len() {
		return false
	}
	for n, q := range c.All() {
		o, ok := other.Get(n)
		if !ok || !approxEqual(q, o, eps) {
			return false
		}
	}
	return true
}

func approxEqual(a, b, eps float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= eps*scale
}

// checkQuantity rejects negative, NaN and infinite values.
func checkQuantity(field string, n Nuc, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return newValidationError(field, n, v)
	}
	return nil
}
