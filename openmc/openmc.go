// Package openmc renders materials as OpenMC <material> XML elements.
package openmc

import (
	"encoding/xml"
	"strconv"

	"github.com/zoobzio/isotope"
)

// FormatName is the registry name of this format.
const FormatName = "openmc"

func init() {
	isotope.RegisterFormat(FormatName, func(cfg isotope.FormatConfig) (isotope.Format, error) {
		opts := []Option{}
		if cfg.Basis != "" {
			opts = append(opts, WithBasis(cfg.Basis))
		}
		x, err := New(cfg.Number, opts...)
		if err != nil {
			return nil, err
		}
		return x, nil
	})
}

// XML renders a material as an OpenMC material element.
type XML struct {
	id    int
	basis isotope.Basis
}

// Option configures the OpenMC format.
type Option func(*XML)

// WithBasis selects weight (mass, default) or atom fractions.
func WithBasis(b isotope.Basis) Option {
	return func(x *XML) { x.basis = b }
}

// New returns an OpenMC format writing the given material id.
func New(id int, opts ...Option) (*XML, error) {
	x := &XML{id: id, basis: isotope.BasisMass}
	for _, opt := range opts {
		opt(x)
	}
	if id < 1 {
		return nil, isotope.InvalidArgument("openmc material id %d", id)
	}
	if !isotope.IsValidBasis(x.basis) {
		return nil, isotope.InvalidArgument("openmc basis %q", x.basis)
	}
	return x, nil
}

// Name returns "openmc".
func (x *XML) Name() string {
	return FormatName
}

type material struct {
	XMLName  xml.Name    `xml:"material"`
	ID       int         `xml:"id,attr"`
	Name     string      `xml:"name,attr,omitempty"`
	Density  density     `xml:"density"`
	Elements []component
}

type density struct {
	Value string `xml:"value,attr"`
	Units string `xml:"units,attr"`
}

type component struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
	WO      string `xml:"wo,attr,omitempty"`
	AO      string `xml:"ao,attr,omitempty"`
}

// NuclideName returns the OpenMC (GNDS) spelling of n: "U235", "Am242_m1",
// or the bare symbol for natural elements.
func NuclideName(n isotope.Nuc) string {
	name := isotope.Symbol(n.Z())
	if n.Natural() {
		return name
	}
	name += strconv.Itoa(n.A())
	if n.M() > 0 {
		name += "_m" + strconv.Itoa(n.M())
	}
	return name
}

// Render writes the material element. The material must have a density.
func (x *XML) Render(m *isotope.Material) (string, error) {
	if m.Density() == isotope.Unset {
		return "", isotope.InvalidArgument("openmc material %q has no density", m.Name())
	}
	fracs, err := m.Fractions(x.basis)
	if err != nil {
		return "", err
	}

	doc := material{
		ID:   x.id,
		Name: m.Name(),
		Density: density{
			Value: strconv.FormatFloat(m.Density(), 'g', -1, 64),
			Units: "g/cc",
		},
	}
	for n, f := range fracs.All() {
		c := component{Name: NuclideName(n)}
		c.XMLName.Local = "nuclide"
		if n.Natural() {
			c.XMLName.Local = "element"
		}
		v := strconv.FormatFloat(f, 'E', 5, 64)
		if x.basis == isotope.BasisAtom {
			c.AO = v
		} else {
			c.WO = v
		}
		doc.Elements = append(doc.Elements, c)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
