package isotope

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestComposition_ZeroValue(t *testing.T) {
	var c Composition
	if c.Len() != 0 || c.Sum() != 0 {
		t.Errorf("zero value Len/Sum = %d/%v, want 0/0", c.Len(), c.Sum())
	}
	if err := c.Set(922350000, 1); err != nil {
		t.Fatalf("Set() on zero value error: %v", err)
	}
	if q, ok := c.Get(922350000); !ok || q != 1 {
		t.Errorf("Get() = %v, %v; want 1, true", q, ok)
	}

	var nilComp *Composition
	if nilComp.Len() != 0 || nilComp.Nucs() != nil {
		t.Error("nil composition should read as empty")
	}
}

func TestComposition_Set_Rejects(t *testing.T) {
	c := mustComposition(t, map[Nuc]float64{922350000: 0.5})

	tests := []struct {
		name   string
		nuc    Nuc
		q      float64
		target error
	}{
		{"negative", 922380000, -0.1, ErrValidation},
		{"nan", 922380000, math.NaN(), ErrValidation},
		{"inf", 922380000, math.Inf(1), ErrValidation},
		{"bad id", 5, 1, ErrInvalidNuclide},
		{"replace negative", 922350000, -1, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(tt.nuc, tt.q); !errors.Is(err, tt.target) {
				t.Errorf("Set() error = %v, want %v", err, tt.target)
			}
			if c.Len() != 1 {
				t.Errorf("Len() = %d after rejected Set, want 1", c.Len())
			}
			if q, _ := c.Get(922350000); q != 0.5 {
				t.Errorf("Get(U235) = %v after rejected Set, want 0.5", q)
			}
		})
	}
}

func TestComposition_Order(t *testing.T) {
	c := mustComposition(t, map[Nuc]float64{
		962440000: 1, 10010000: 1, 922380000: 1, 80160000: 1, 922350000: 1,
	})

	var got []Nuc
	for n := range c.All() {
		got = append(got, n)
	}
	want := []Nuc{10010000, 80160000, 922350000, 922380000, 962440000}
	if !slices.Equal(got, want) {
		t.Errorf("All() order = %v, want %v", got, want)
	}
	if !slices.Equal(c.Nucs(), want) {
		t.Errorf("Nucs() = %v, want %v", c.Nucs(), want)
	}
	entries := c.Entries()
	if len(entries) != len(want) || entries[0].Nuc != want[0] {
		t.Errorf("Entries() = %v", entries)
	}
}

func TestComposition_AllStopsEarly(t *testing.T) {
	c := mustComposition(t, map[Nuc]float64{10010000: 1, 80160000: 1, 922350000: 1})
	count := 0
	for range c.All() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iterated %d times after break, want 1", count)
	}
}

func TestComposition_Normalize(t *testing.T) {
	c := mustComposition(t, map[Nuc]float64{922350000: 1, 922380000: 3})

	norm, err := c.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if q, _ := norm.Get(922380000); q != 0.75 {
		t.Errorf("Get(U238) = %v, want 0.75", q)
	}
	if math.Abs(norm.Sum()-1) > Epsilon {
		t.Errorf("Sum() = %v, want 1", norm.Sum())
	}
	if c.Sum() != 4 {
		t.Error("Normalize() must not modify the receiver")
	}

	again, _ := norm.Normalize()
	if !again.Equal(norm, Epsilon) {
		t.Error("Normalize() is not idempotent")
	}
}

func TestComposition_NormalizeEmpty(t *testing.T) {
	for name, c := range map[string]*Composition{
		"empty":    {},
		"all zero": mustComposition(t, map[Nuc]float64{922350000: 0, 922380000: 0}),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Normalize(); !errors.Is(err, ErrEmptyComposition) {
				t.Errorf("Normalize() error = %v, want ErrEmptyComposition", err)
			}
		})
	}
}

func TestComposition_ScaleMergeFilter(t *testing.T) {
	a := mustComposition(t, map[Nuc]float64{10010000: 1, 80160000: 2})
	b := mustComposition(t, map[Nuc]float64{80160000: 1, 922350000: 4})

	scaled, err := a.Scale(2)
	if err != nil {
		t.Fatalf("Scale() error: %v", err)
	}
	if scaled.Sum() != 6 {
		t.Errorf("Scale(2).Sum() = %v, want 6", scaled.Sum())
	}
	if _, err := a.Scale(-1); !errors.Is(err, ErrValidation) {
		t.Errorf("Scale(-1) error = %v, want ErrValidation", err)
	}

	merged, err := a.Merge(b, 0.5, 2)
	if err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	want := mustComposition(t, map[Nuc]float64{10010000: 0.5, 80160000: 3, 922350000: 8})
	if !merged.Equal(want, Epsilon) {
		t.Errorf("Merge() = %v, want %v", merged.Map(), want.Map())
	}
	if _, err := a.Merge(b, math.NaN(), 1); !errors.Is(err, ErrValidation) {
		t.Errorf("Merge(NaN) error = %v, want ErrValidation", err)
	}

	heavy := merged.Filter(func(n Nuc) bool { return n.Z() > 8 })
	if heavy.Len() != 1 {
		t.Errorf("Filter() Len = %d, want 1", heavy.Len())
	}
}

func TestComposition_CloneIndependent(t *testing.T) {
	a := mustComposition(t, map[Nuc]float64{10010000: 1})
	b := a.Clone()
	_ = b.Set(10010000, 5)
	b.Delete(10010000)

	if q, ok := a.Get(10010000); !ok || q != 1 {
		t.Error("Clone() shares state with the original")
	}

	m := a.Map()
	m[80160000] = 3
	if a.Len() != 1 {
		t.Error("Map() shares state with the composition")
	}
}

func TestComposition_Equal(t *testing.T) {
	a := mustComposition(t, map[Nuc]float64{10010000: 1, 80160000: 2})
	b := mustComposition(t, map[Nuc]float64{10010000: 1 + 1e-15, 80160000: 2})
	c := mustComposition(t, map[Nuc]float64{10010000: 1, 922350000: 2})

	if !a.Equal(b, Epsilon) {
		t.Error("Equal() should tolerate differences below Epsilon")
	}
	if a.Equal(b, 0) {
		t.Error("Equal() with zero tolerance should be exact")
	}
	if a.Equal(c, Epsilon) {
		t.Error("Equal() should compare key sets")
	}
}

func TestCompositionOf_LastWins(t *testing.T) {
	c, err := CompositionOf(Entry{922350000, 1}, Entry{922350000, 2})
	if err != nil {
		t.Fatalf("CompositionOf() error: %v", err)
	}
	if q, _ := c.Get(922350000); q != 2 {
		t.Errorf("Get() = %v, want 2", q)
	}
	if _, err := CompositionOf(Entry{922350000, -2}); !errors.Is(err, ErrValidation) {
		t.Errorf("CompositionOf() error = %v, want ErrValidation", err)
	}
}
