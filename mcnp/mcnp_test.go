package mcnp

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/zoobzio/isotope"
	isotopetest "github.com/zoobzio/isotope/testing"
)

func TestRenderSample(t *testing.T) {
	card, err := New(1)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	out, err := card.Render(isotopetest.SampleMaterial(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := strings.Join([]string{
		"m1",
		"     1001    -1.11111E-01",
		"     8016    -1.11111E-01",
		"     69169   -1.11111E-01",
		"     92235   -1.11111E-01",
		"     92238   -1.11111E-01",
		"     94239   -1.11111E-01",
		"     94241   -1.11111E-01",
		"     95242   -1.11111E-01",
		"     96244   -1.11111E-01",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("Render() =\n%s\nwant\n%s", out, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	card, _ := New(3, WithLibrary(".80c"))
	m := isotopetest.SampleMaterial(t, isotope.WithName("sample"))

	first, err := card.Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := card.Render(m)
		if again != first {
			t.Fatalf("Render() differs on call %d", i)
		}
	}
	if !strings.HasPrefix(first, "c name: sample\nm3\n") {
		t.Errorf("Render() header = %q", first[:min(len(first), 20)])
	}
	if !strings.Contains(first, "     1001.80c    -1.11111E-01\n") {
		t.Errorf("Render() lacks padded library suffix:\n%s", first)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		number int
		opts   []Option
	}{
		{"zero number", 0, nil},
		{"negative number", -4, nil},
		{"number too large", MaxMaterialNumber + 1, nil},
		{"library without dot", 1, []Option{WithLibrary("70c")}},
		{"library with digits only", 1, []Option{WithLibrary(".70")}},
		{"library upper case", 1, []Option{WithLibrary(".70C")}},
		{"unknown basis", 1, []Option{WithBasis("volume")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.number, tt.opts...); !errors.Is(err, isotope.ErrInvalidArgument) {
				t.Errorf("New() error = %v, want ErrInvalidArgument", err)
			}
		})
	}

	for _, lib := range []string{".70c", ".80c", ".710nc", ".24u"} {
		if _, err := New(MaxMaterialNumber, WithLibrary(lib)); err != nil {
			t.Errorf("New(%q) error: %v", lib, err)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	card, _ := New(1)
	m, err := isotope.New(&isotope.Composition{})
	if err != nil {
		t.Fatalf("isotope.New() error: %v", err)
	}
	out, err := card.Render(m)
	if !errors.Is(err, isotope.ErrEmptyComposition) {
		t.Errorf("Render() error = %v, want ErrEmptyComposition", err)
	}
	if out != "" {
		t.Errorf("Render() wrote %q on error", out)
	}
}

func TestRenderAtomBasis(t *testing.T) {
	card, _ := New(2, WithBasis(isotope.BasisAtom))
	m := isotopetest.LEU(t)

	out, err := card.Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "     ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || strings.HasPrefix(fields[1], "-") {
			t.Errorf("atom fraction line %q must hold a positive fraction", line)
		}
	}

	x, err := m.AtomFraction(922350000)
	if err != nil {
		t.Fatalf("AtomFraction() error: %v", err)
	}
	want := "     92235   " + formatFraction(x) + "\n"
	if !strings.Contains(out, want) {
		t.Errorf("Render() =\n%s\nwant line %q", out, want)
	}
}

func TestRenderAtomBasisNeedsProvider(t *testing.T) {
	card, _ := New(2, WithBasis(isotope.BasisAtom))
	_, err := card.Render(isotopetest.SampleMaterial(t))
	if !errors.Is(err, isotope.ErrDataUnavailable) {
		t.Errorf("Render() error = %v, want ErrDataUnavailable", err)
	}
}

func TestRenderUnsigned(t *testing.T) {
	card, _ := New(1, WithMassSign(false))
	out, err := card.Render(isotopetest.LEU(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "     92238   9.60000E-01\n") {
		t.Errorf("Render() =\n%s", out)
	}
}

func TestRenderRejectsMultilineName(t *testing.T) {
	card, _ := New(1)
	for _, name := range []string{"fuel\nm2 1001 1.0", "fuel\r", "\n"} {
		m := isotopetest.LEU(t)
		m.SetName(name)
		out, err := card.Render(m)
		if !errors.Is(err, isotope.ErrInvalidArgument) {
			t.Errorf("Render() with name %q error = %v, want ErrInvalidArgument", name, err)
		}
		if out != "" {
			t.Errorf("Render() with name %q wrote %q", name, out)
		}
	}
}

func TestRenderMixOmitsZeroWeightSide(t *testing.T) {
	card, _ := New(1)
	water, _ := isotope.New(mustComp(t, 1001, 2, 8016, 16))
	mix, err := isotopetest.LEU(t).MixWith(water, 1)
	if err != nil {
		t.Fatalf("MixWith() error: %v", err)
	}
	out, err := card.Render(mix)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(out, "0.00000E+00") || strings.Contains(out, "1001") || strings.Contains(out, "8016") {
		t.Errorf("Render() kept the zero-weighted side:\n%s", out)
	}
}

func mustComp(t *testing.T, pairs ...float64) *isotope.Composition {
	t.Helper()
	var entries []isotope.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		n, err := isotope.Canonicalize(int(pairs[i]))
		if err != nil {
			t.Fatalf("Canonicalize(%v) error: %v", pairs[i], err)
		}
		entries = append(entries, isotope.Entry{Nuc: n, Quantity: pairs[i+1]})
	}
	comp, err := isotope.CompositionOf(entries...)
	if err != nil {
		t.Fatalf("CompositionOf() error: %v", err)
	}
	return comp
}

func TestMetastable(t *testing.T) {
	comp, _ := isotope.CompositionOf(
		isotope.Entry{Nuc: isotope.MustNewNuc(95, 242, 0), Quantity: 1},
		isotope.Entry{Nuc: isotope.MustNewNuc(95, 242, 1), Quantity: 3},
	)
	m, _ := isotope.New(comp)

	t.Run("collapsed", func(t *testing.T) {
		card, _ := New(1)
		out, err := card.Render(m)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if out != "m1\n     95242   -1.00000E+00\n" {
			t.Errorf("Render() = %q", out)
		}
	})

	t.Run("alias", func(t *testing.T) {
		card, _ := New(1, WithMetastableAlias())
		out, err := card.Render(m)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		want := "m1\n     95242   -2.50000E-01\n     95642   -7.50000E-01\n"
		if out != want {
			t.Errorf("Render() = %q, want %q", out, want)
		}
	})
}

func TestZAID(t *testing.T) {
	tests := []struct {
		nuc   isotope.Nuc
		alias bool
		want  int
	}{
		{10010000, false, 1001},
		{922350000, false, 92235},
		{952420001, false, 95242},
		{952420001, true, 95642},
		{260000000, false, 26000},
	}
	for _, tt := range tests {
		got, err := ZAID(tt.nuc, tt.alias)
		if err != nil {
			t.Errorf("ZAID(%d) error: %v", tt.nuc, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ZAID(%d, %v) = %d, want %d", tt.nuc, tt.alias, got, tt.want)
		}
	}

	if _, err := ZAID(isotope.MustNewNuc(95, 642, 1), true); err == nil {
		t.Error("ZAID() should reject an alias above 999")
	}
}

func TestRegistered(t *testing.T) {
	f, err := isotope.NewFormat(FormatName, isotope.FormatConfig{Number: 12, Library: ".70c"})
	if err != nil {
		t.Fatalf("NewFormat() error: %v", err)
	}
	if f.(*Card).Number() != 12 {
		t.Errorf("Number() = %d, want 12", f.(*Card).Number())
	}

	if _, err := isotope.NewFormat(FormatName, isotope.FormatConfig{}); !errors.Is(err, isotope.ErrInvalidArgument) {
		t.Errorf("NewFormat() with number 0 error = %v, want ErrInvalidArgument", err)
	}
}

func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'E', 5, 64)
}
