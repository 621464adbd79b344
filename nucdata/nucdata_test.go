package nucdata

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zoobzio/isotope"
	isotopetest "github.com/zoobzio/isotope/testing"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	again, _ := Default()
	if table != again {
		t.Error("Default() should return the same table every call")
	}

	for _, n := range isotopetest.SampleNucs {
		m, err := table.AtomicMass(n)
		if err != nil {
			t.Errorf("AtomicMass(%s) error: %v", n, err)
			continue
		}
		if math.Abs(m-float64(n.A())) > 0.1 {
			t.Errorf("AtomicMass(%s) = %v, want close to %d", n, m, n.A())
		}
	}
}

func TestDefault_NaturalMass(t *testing.T) {
	table, _ := Default()

	u, _ := isotope.Element(92)
	m, err := table.AtomicMass(u)
	if err != nil {
		t.Fatalf("AtomicMass(U) error: %v", err)
	}
	if math.Abs(m-238.029) > 0.01 {
		t.Errorf("AtomicMass(U) = %v, want about 238.029", m)
	}

	ab, err := table.NaturalAbundances(92)
	if err != nil {
		t.Fatalf("NaturalAbundances(92) error: %v", err)
	}
	var sum float64
	for _, x := range ab {
		sum += x
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("abundances sum to %v, want 1", sum)
	}

	ab[922350000] = 0.5
	fresh, _ := table.NaturalAbundances(92)
	if fresh[922350000] == 0.5 {
		t.Error("NaturalAbundances() exposes internal state")
	}
}

func TestDefault_Missing(t *testing.T) {
	table, _ := Default()

	_, err := table.AtomicMass(isotope.MustNewNuc(26, 59, 0))
	if !errors.Is(err, isotope.ErrDataUnavailable) {
		t.Errorf("AtomicMass(Fe59) error = %v, want ErrDataUnavailable", err)
	}
	if _, err := table.NaturalAbundances(94); !errors.Is(err, isotope.ErrDataUnavailable) {
		t.Errorf("NaturalAbundances(94) error = %v, want ErrDataUnavailable", err)
	}

	fallback := table.WithFallback()
	m, err := fallback.AtomicMass(isotope.MustNewNuc(26, 59, 0))
	if err != nil || m != 59 {
		t.Errorf("fallback AtomicMass(Fe59) = %v, %v; want 59, nil", m, err)
	}
	if _, err := fallback.AtomicMass(isotope.MustNewNuc(94, 0, 0)); !errors.Is(err, isotope.ErrDataUnavailable) {
		t.Errorf("fallback AtomicMass(Pu) error = %v, want ErrDataUnavailable", err)
	}
}

func TestDefault_DrivesConversions(t *testing.T) {
	table, _ := Default()
	m := isotopetest.SampleMaterial(t, isotope.WithProvider(table))

	atoms, err := m.AtomFractions()
	if err != nil {
		t.Fatalf("AtomFractions() error: %v", err)
	}
	if math.Abs(atoms.Sum()-1) > 1e-12 {
		t.Errorf("atom fractions sum to %v", atoms.Sum())
	}

	comp, _ := isotope.CompositionOf(
		isotope.Entry{Nuc: 260000000, Quantity: 1},
		isotope.Entry{Nuc: 80000000, Quantity: 1},
	)
	rust, _ := isotope.New(comp, isotope.WithProvider(table))
	if err := rust.ExpandElements(); err != nil {
		t.Fatalf("ExpandElements() error: %v", err)
	}
	if rust.Len() != 7 {
		t.Errorf("Len() = %d after expanding Fe and O, want 7", rust.Len())
	}
	if got := rust.MassFraction(260560000); got < 0.45 || got > 0.5 {
		t.Errorf("MassFraction(Fe56) = %v, want about 0.46", got)
	}
}

func TestLoad(t *testing.T) {
	in := `
masses:
  h-1: 1.008
  "1002": 2.014
abundances:
  hydrogen: {H1: 3, H2: 1}
`
	table, err := Load(strings.NewReader(in), WithMassNumberFallback())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (two isotopes and natural H)", table.Len())
	}
	ab, _ := table.NaturalAbundances(1)
	if ab[10010000] != 0.75 {
		t.Errorf("abundance of H1 = %v, want 0.75 after normalization", ab[10010000])
	}
	h, _ := table.AtomicMass(10000000)
	if want := 0.75*1.008 + 0.25*2.014; math.Abs(h-want) > 1e-12 {
		t.Errorf("AtomicMass(H) = %v, want %v", h, want)
	}
	if m, _ := table.AtomicMass(80160000); m != 16 {
		t.Errorf("fallback AtomicMass(O16) = %v, want 16", m)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		target error
	}{
		{"bad nuclide", "masses: {Qq1: 1}", isotope.ErrInvalidNuclide},
		{"zero mass", "masses: {H1: 0}", isotope.ErrValidation},
		{"unknown element", "abundances: {Qq: {H1: 1}}", isotope.ErrInvalidNuclide},
		{"foreign isotope", "abundances: {H: {O16: 1}}", isotope.ErrInvalidArgument},
		{"negative abundance", "abundances: {H: {H1: -1}}", isotope.ErrValidation},
		{"empty abundances", "abundances: {H: {H1: 0}}", isotope.ErrEmptyComposition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.in)); !errors.Is(err, tt.target) {
				t.Errorf("Load() error = %v, want %v", err, tt.target)
			}
		})
	}

	if _, err := Load(strings.NewReader("masses: [")); err == nil {
		t.Error("Load() should reject malformed YAML")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte("masses: {U235: 235.04}\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if m, _ := table.AtomicMass(922350000); m != 235.04 {
		t.Errorf("AtomicMass(U235) = %v, want 235.04", m)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Open() should fail for a missing file")
	}
}
