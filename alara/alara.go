// Package alara renders materials as ALARA material definitions.
//
//	fuel 1.04000E+01 2
//	     u:235   4.00000E-02   92
//	     u:238   9.60000E-01   92
package alara

import (
	"strconv"
	"strings"

	"github.com/zoobzio/isotope"
)

// FormatName is the registry name of this format.
const FormatName = "alara"

func init() {
	isotope.RegisterFormat(FormatName, func(isotope.FormatConfig) (isotope.Format, error) {
		return New(), nil
	})
}

// Definition renders ALARA mixture definitions.
type Definition struct{}

// New returns an ALARA format.
func New() *Definition {
	return &Definition{}
}

// Name returns "alara".
func (d *Definition) Name() string {
	return FormatName
}

// NuclideName returns the ALARA spelling of n: lower-case symbol, a colon
// and the mass number ("u:235"), or the bare symbol for natural elements.
func NuclideName(n isotope.Nuc) (string, error) {
	if !n.Valid() {
		return "", isotope.InvalidArgument("alara name of invalid nuclide %d", int(n))
	}
	if n.M() != 0 {
		return "", isotope.InvalidArgument("alara has no name for metastable %s", n)
	}
	sym := strings.ToLower(isotope.Symbol(n.Z()))
	if n.Natural() {
		return sym, nil
	}
	return sym + ":" + strconv.Itoa(n.A()), nil
}

// Render writes the definition. The material needs a name without
// whitespace and a density.
func (d *Definition) Render(m *isotope.Material) (string, error) {
	name := m.Name()
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return "", isotope.InvalidArgument("alara material name %q", name)
	}
	if m.Density() == isotope.Unset {
		return "", isotope.InvalidArgument("alara material %s has no density", name)
	}
	fracs, err := m.NormalizedComposition()
	if err != nil {
		return "", err
	}

	names := make([]string, 0, fracs.Len())
	width := 0
	for n := range fracs.All() {
		s, err := NuclideName(n)
		if err != nil {
			return "", err
		}
		names = append(names, s)
		width = max(width, len(s))
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(m.Density(), 'E', 5, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(fracs.Len()))
	b.WriteByte('\n')
	i := 0
	for n, f := range fracs.All() {
		b.WriteString("     ")
		b.WriteString(names[i])
		b.WriteString(strings.Repeat(" ", width-len(names[i])))
		b.WriteString("   ")
		b.WriteString(strconv.FormatFloat(f, 'E', 5, 64))
		b.WriteString("   ")
		b.WriteString(strconv.Itoa(n.Z()))
		b.WriteByte('\n')
		i++
	}
	return b.String(), nil
}
