// Package mcnp renders materials as MCNP material cards.
//
// A card looks like
//
//	m1
//	     1001.70c   -1.11111E-01
//	     8016.70c   -1.11111E-01
//
// ZAIDs are Z*1000 + A followed by an optional cross-section library
// suffix. Fractions carry six significant digits in fixed-width scientific
// notation. Mass fractions are negative by MCNP convention; atom fractions
// are positive.
package mcnp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zoobzio/isotope"
)

// FormatName is the registry name of this format.
const FormatName = "mcnp"

// MaxMaterialNumber is the largest material number MCNP accepts.
const MaxMaterialNumber = 99_999_999

// libraryPattern matches suffixes such as ".70c", ".80c" or ".710nc".
var libraryPattern = regexp.MustCompile(`^\.\d{2,3}[a-z]{1,2}$`)

func init() {
	isotope.RegisterFormat(FormatName, func(cfg isotope.FormatConfig) (isotope.Format, error) {
		opts := []Option{WithLibrary(cfg.Library)}
		if cfg.Basis != "" {
			opts = append(opts, WithBasis(cfg.Basis))
		}
		if cfg.Unsigned {
			opts = append(opts, WithMassSign(false))
		}
		if cfg.MetastableAlias {
			opts = append(opts, WithMetastableAlias())
		}
		c, err := New(cfg.Number, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Card is an MCNP material card format bound to one material number.
type Card struct {
	number          int
	library         string
	basis           isotope.Basis
	massSign        bool
	metastableAlias bool
}

// Option configures a Card.
type Option func(*Card)

// WithLibrary appends a cross-section library suffix such as ".70c" to
// every ZAID. The default is no suffix.
func WithLibrary(suffix string) Option {
	return func(c *Card) { c.library = suffix }
}

// WithBasis selects mass (default) or atom fractions.
func WithBasis(b isotope.Basis) Option {
	return func(c *Card) { c.basis = b }
}

// WithMassSign controls whether mass fractions are written negative
// (default true).
func WithMassSign(negative bool) Option {
	return func(c *Card) { c.massSign = negative }
}

// WithMetastableAlias encodes metastable states as A + 300 + 100*M instead
// of dropping the state.
func WithMetastableAlias() Option {
	return func(c *Card) { c.metastableAlias = true }
}

// New returns an MCNP card format for the given material number.
func New(number int, opts ...Option) (*Card, error) {
	c := &Card{
		number:   number,
		basis:    isotope.BasisMass,
		massSign: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if number < 1 || number > MaxMaterialNumber {
		return nil, isotope.InvalidArgument("mcnp material number %d outside [1, %d]", number, MaxMaterialNumber)
	}
	if c.library != "" && !libraryPattern.MatchString(c.library) {
		return nil, isotope.InvalidArgument("mcnp library suffix %q", c.library)
	}
	if !isotope.IsValidBasis(c.basis) {
		return nil, isotope.InvalidArgument("mcnp basis %q", c.basis)
	}
	return c, nil
}

// Name returns "mcnp".
func (c *Card) Name() string {
	return FormatName
}

// Number returns the material number.
func (c *Card) Number() int {
	return c.number
}

// ZAID returns the MCNP identifier of n without library suffix.
// The metastable state is dropped unless alias is set.
func ZAID(n isotope.Nuc, alias bool) (int, error) {
	if !n.Valid() {
		return 0, isotope.InvalidArgument("mcnp zaid of invalid nuclide %d", int(n))
	}
	a := n.A()
	if alias && n.M() > 0 {
		a += 300 + 100*n.M()
		if a > 999 {
			return 0, isotope.InvalidArgument("mcnp cannot alias %s", n)
		}
	}
	return n.Z()*1000 + a, nil
}

// Render writes the material card. Nothing is written unless the whole
// card validates. A name must fit on the single comment line.
func (c *Card) Render(m *isotope.Material) (string, error) {
	if strings.ContainsAny(m.Name(), "\r\n") {
		return "", isotope.InvalidArgument("mcnp material name %q spans lines", m.Name())
	}
	fracs, err := m.Fractions(c.basis)
	if err != nil {
		return "", err
	}

	type line struct {
		zaid string
		frac float64
	}
	var lines []line
	index := make(map[string]int, fracs.Len())
	width := 0
	for n, f := range fracs.All() {
		z, err := ZAID(n, c.metastableAlias)
		if err != nil {
			return "", err
		}
		zaid := strconv.Itoa(z) + c.library
		if i, ok := index[zaid]; ok {
			lines[i].frac += f
			continue
		}
		index[zaid] = len(lines)
		lines = append(lines, line{zaid: zaid, frac: f})
		width = max(width, len(zaid))
	}

	sign := ""
	if c.basis == isotope.BasisMass && c.massSign {
		sign = "-"
	}

	var b strings.Builder
	if name := m.Name(); name != "" {
		b.WriteString("c name: ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteString("m")
	b.WriteString(strconv.Itoa(c.number))
	b.WriteByte('\n')
	for _, l := range lines {
		b.WriteString("     ")
		b.WriteString(l.zaid)
		b.WriteString(strings.Repeat(" ", width-len(l.zaid)))
		b.WriteString("   ")
		b.WriteString(sign)
		b.WriteString(strconv.FormatFloat(l.frac, 'E', 5, 64))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
