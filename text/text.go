// Package text reads and writes materials as plain key/value text.
//
//	Name     fuel
//	Mass     1
//	Density  10.4
//	APerM    -1
//	Meta     source PWR assembly
//	U235     0.04
//	U238     0.96
//
// Quantities are written with the fewest digits that round-trip, so Parse
// reproduces the Material exactly.
package text

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/zoobzio/isotope"
)

// FormatName is the registry name of this format.
const FormatName = "text"

const (
	keyName    = "Name"
	keyMass    = "Mass"
	keyDensity = "Density"
	keyAPerM   = "APerM"
	keyMeta    = "Meta"
	keyWidth   = 9
)

func init() {
	isotope.RegisterFormat(FormatName, func(isotope.FormatConfig) (isotope.Format, error) {
		return New(), nil
	})
}

// Text is the plain-text material format.
type Text struct{}

// New returns the text format.
func New() *Text {
	return &Text{}
}

// Name returns "text".
func (t *Text) Name() string {
	return FormatName
}

// Render writes m including its raw (unnormalized) composition.
func (t *Text) Render(m *isotope.Material) (string, error) {
	comp := m.Composition()
	if comp.Len() == 0 {
		return "", isotope.ErrEmptyComposition
	}
	if err := checkRoundTrip(m); err != nil {
		return "", err
	}
	var b strings.Builder
	if m.Name() != "" {
		writeLine(&b, keyName, m.Name())
	}
	writeLine(&b, keyMass, formatFloat(m.Mass()))
	writeLine(&b, keyDensity, formatFloat(m.Density()))
	writeLine(&b, keyAPerM, formatFloat(m.AtomsPerMolecule()))
	for _, key := range m.MetadataKeys() {
		v, _ := m.Metadata(key)
		writeLine(&b, keyMeta, key+" "+v)
	}
	for n, q := range comp.All() {
		writeLine(&b, n.String(), formatFloat(q))
	}
	return b.String(), nil
}

// checkRoundTrip rejects names and metadata that Parse could not read back
// unchanged.
func checkRoundTrip(m *isotope.Material) error {
	if !singleLine(m.Name()) {
		return isotope.InvalidArgument("text material name %q", m.Name())
	}
	for _, key := range m.MetadataKeys() {
		if key == "" || strings.ContainsFunc(key, unicode.IsSpace) {
			return isotope.InvalidArgument("text metadata key %q", key)
		}
		if v, _ := m.Metadata(key); !singleLine(v) {
			return isotope.InvalidArgument("text metadata %s value %q", key, v)
		}
	}
	return nil
}

// singleLine reports whether s survives one trimmed line of text.
func singleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n") && strings.TrimSpace(s) == s
}

func writeLine(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(strings.Repeat(" ", max(1, keyWidth-len(key))))
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse reads a material written by Render. Blank lines and lines starting
// with '#' are skipped. Extra options (typically isotope.WithProvider) are
// applied last.
func Parse(r io.Reader, opts ...isotope.Option) (*isotope.Material, error) {
	comp := &isotope.Composition{}
	md := make(map[string]string)
	var base []isotope.Option

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("line %d: %w: missing value for %q", lineNo, isotope.ErrInvalidArgument, key)
		}

		switch key {
		case keyName:
			base = append(base, isotope.WithName(value))
		case keyMeta:
			k, v, _ := strings.Cut(value, " ")
			md[k] = strings.TrimSpace(v)
		case keyMass, keyDensity, keyAPerM:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, isotope.ErrInvalidArgument, err)
			}
			switch key {
			case keyMass:
				base = append(base, isotope.WithMass(f))
			case keyDensity:
				base = append(base, isotope.WithDensity(f))
			default:
				base = append(base, isotope.WithAtomsPerMolecule(f))
			}
		default:
			n, err := isotope.Canonicalize(key)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			q, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, isotope.ErrValidation, err)
			}
			if err := comp.Set(n, q); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	base = append(base, isotope.WithMetadata(md))
	return isotope.New(comp, append(base, opts...)...)
}
