package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/zoobzio/isotope"
	"github.com/zoobzio/isotope/bson"
	"github.com/zoobzio/isotope/json"
	"github.com/zoobzio/isotope/msgpack"
	"github.com/zoobzio/isotope/text"
	"github.com/zoobzio/isotope/xml"
	"github.com/zoobzio/isotope/yaml"
)

// codecs maps encoding names to their codecs. "text" is handled separately.
var codecs = map[string]func() isotope.Codec{
	"json":    json.New,
	"yaml":    yaml.New,
	"xml":     xml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
}

var extensions = map[string]string{
	".json":    "json",
	".yaml":    "yaml",
	".yml":     "yaml",
	".xml":     "xml",
	".msgpack": "msgpack",
	".mpk":     "msgpack",
	".bson":    "bson",
	".txt":     "text",
}

// encodingOf returns the encoding name for path's extension.
func encodingOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%s: unknown material file extension %q", path, ext)
	}
	return enc, nil
}

func readFile(path string, opts ...isotope.Option) (*isotope.Material, error) {
	enc, err := encodingOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := decode(enc, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func decode(enc string, r io.Reader, opts ...isotope.Option) (*isotope.Material, error) {
	if enc == text.FormatName {
		return text.Parse(r, opts...)
	}
	newCodec, ok := codecs[enc]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return isotope.Unmarshal(newCodec(), data, opts...)
}

func encode(enc string, m *isotope.Material) ([]byte, error) {
	if enc == text.FormatName {
		s, err := text.New().Render(m)
		return []byte(s), err
	}
	newCodec, ok := codecs[enc]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
	return isotope.Marshal(newCodec(), m)
}

// describe prints the material properties and, per nuclide, its mass and
// atom fractions. Atom fractions are left out when the provider lacks data.
func describe(w io.Writer, m *isotope.Material) error {
	norm, err := m.NormalizedComposition()
	if err != nil {
		return err
	}
	atoms, atomErr := m.AtomFractions()

	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
	if m.Name() != "" {
		fmt.Fprintf(tw, "name\t%s\n", m.Name())
	}
	fmt.Fprintf(tw, "mass\t%g\n", m.Mass())
	if m.Density() >= 0 {
		fmt.Fprintf(tw, "density\t%g g/cm3\n", m.Density())
	}
	if mol, err := m.MolecularMass(); err == nil {
		fmt.Fprintf(tw, "molecular mass\t%.6g g/mol\n", mol)
	}
	for _, k := range m.MetadataKeys() {
		v, _ := m.Metadata(k)
		fmt.Fprintf(tw, "meta %s\t%s\n", k, v)
	}

	fmt.Fprintln(tw, "\nnuclide\tmass frac\tatom frac")
	for n, q := range norm.All() {
		atom := "-"
		if atomErr == nil {
			x, _ := atoms.Get(n)
			atom = fmt.Sprintf("%.5e", x)
		}
		fmt.Fprintf(tw, "%s\t%.5e\t%s\n", n, q, atom)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if atomErr != nil {
		_, err = fmt.Fprintf(w, "\natom fractions unavailable: %v\n", atomErr)
	}
	return err
}
