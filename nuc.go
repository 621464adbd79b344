package isotope

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field widths of the canonical id.
const (
	zFactor = 10_000_000
	aFactor = 10_000
	maxA    = 999
	maxM    = 9_999
)

// Nuc describes a nuclide in ZZZAAAMMMM format: Z*10,000,000 + A*10,000 + M.
//
// Numeric order is canonical order: atomic number, then mass number, then
// metastable state. A mass number of zero marks a natural element.
type Nuc int

// NewNuc builds a Nuc from its atomic number, mass number and metastable state.
func NewNuc(z, a, m int) (Nuc, error) {
	if err := checkZAM(z, a, m); err != nil {
		return 0, newNuclideError(fmt.Sprintf("z=%d a=%d m=%d", z, a, m), err.Error())
	}
	return Nuc(z*zFactor + a*aFactor + m), nil
}

// MustNewNuc is like NewNuc but panics on invalid input.
// Intended for package-level tables and tests.
func MustNewNuc(z, a, m int) Nuc {
	n, err := NewNuc(z, a, m)
	if err != nil {
		panic(err)
	}
	return n
}

// Element returns the natural-element pseudo-id for atomic number z.
func Element(z int) (Nuc, error) {
	return NewNuc(z, 0, 0)
}

// Z returns the atomic number of a nuclide.
func (n Nuc) Z() int {
	return int(n) / zFactor
}

// A returns the mass number of a nuclide.
func (n Nuc) A() int {
	return (int(n) / aFactor) % 1000
}

// M returns the metastable state index of a nuclide.
func (n Nuc) M() int {
	return int(n) % aFactor
}

// Natural reports whether n is a natural-element pseudo-id.
func (n Nuc) Natural() bool {
	return n.Valid() && n.A() == 0
}

// Valid reports whether n satisfies the identity invariants.
func (n Nuc) Valid() bool {
	return n > 0 && checkZAM(n.Z(), n.A(), n.M()) == nil
}

// String returns the human-readable name form, or the raw integer when n is invalid.
func (n Nuc) String() string {
	s, err := Render(n, ConventionName)
	if err != nil {
		return strconv.Itoa(int(n))
	}
	return s
}

func checkZAM(z, a, m int) error {
	switch {
	case z < 1 || z > MaxZ:
		return fmt.Errorf("atomic number %d outside [1, %d]", z, MaxZ)
	case a == 0 && m != 0:
		return fmt.Errorf("natural element cannot be metastable")
	case a != 0 && a < z:
		return fmt.Errorf("mass number %d below atomic number %d", a, z)
	case a < 0 || a > maxA:
		return fmt.Errorf("mass number %d outside [0, %d]", a, maxA)
	case m < 0 || m > maxM:
		return fmt.Errorf("metastable state %d outside [0, %d]", m, maxM)
	}
	return nil
}

// Convention names a textual nuclide naming scheme.
type Convention string

const (
	// ConventionID renders the canonical integer, e.g. "922350000".
	ConventionID Convention = "id"

	// ConventionName renders symbol and mass number, e.g. "U235", "Am242M".
	ConventionName Convention = "name"
)

// validConventions contains all conventions Render understands.
var validConventions = map[Convention]bool{
	ConventionID:   true,
	ConventionName: true,
}

// IsValidConvention returns true if c is a known naming convention.
func IsValidConvention(c Convention) bool {
	return validConventions[c]
}

// Render writes n in the given convention. Canonicalize reverses it.
func Render(n Nuc, c Convention) (string, error) {
	if !n.Valid() {
		return "", newNuclideError(int(n), "not a canonical id")
	}
	switch c {
	case ConventionID:
		return strconv.Itoa(int(n)), nil
	case ConventionName:
		var b strings.Builder
		b.WriteString(Symbol(n.Z()))
		if n.A() == 0 {
			return b.String(), nil
		}
		b.WriteString(strconv.Itoa(n.A()))
		switch m := n.M(); {
		case m == 1:
			b.WriteByte('M')
		case m > 1:
			b.WriteByte('M')
			b.WriteString(strconv.Itoa(m))
		}
		return b.String(), nil
	}
	return "", InvalidArgument("unknown naming convention %q", c)
}

var (
	// U235, U-235, Am242m, Am242M2, Uranium-235
	symbolFirst = regexp.MustCompile(`^([A-Za-z]+)[-_ ]?(\d+)(?:[-_ ]?([mM])(\d*))?$`)
	// 235U, 242mAm
	massFirst = regexp.MustCompile(`^(\d+)[-_ ]?([A-Za-z]+)$`)
	// U-nat, Unat
	natural = regexp.MustCompile(`^([A-Za-z]+?)[-_ ]?(?i:nat)$`)
)

// Canonicalize converts any supported nuclide representation into a Nuc.
//
// Integers at or above 10,000,000 are read as ZZZAAAMMMM ids; smaller
// integers as ZZAAA (Z*1000 + A). Strings may be digits (same rules),
// symbol or element name with a mass number and optional metastable suffix,
// mass number first ("235U"), or a bare element ("U", "U-nat").
func Canonicalize(input any) (Nuc, error) {
	switch v := input.(type) {
	case Nuc:
		return fromInt(int64(v), v)
	case int:
		return fromInt(int64(v), v)
	case int32:
		return fromInt(int64(v), v)
	case int64:
		return fromInt(v, v)
	case uint32:
		return fromInt(int64(v), v)
	case string:
		return fromString(v)
	}
	return 0, newNuclideError(input, fmt.Sprintf("unsupported type %T", input))
}

// MustCanonicalize is like Canonicalize but panics on invalid input.
func MustCanonicalize(input any) Nuc {
	n, err := Canonicalize(input)
	if err != nil {
		panic(err)
	}
	return n
}

func fromInt(v int64, input any) (Nuc, error) {
	var z, a, m int64
	switch {
	case v <= 0:
		return 0, newNuclideError(input, "must be positive")
	case v >= zFactor:
		z, a, m = v/zFactor, v/aFactor%1000, v%aFactor
	default:
		z, a = v/1000, v%1000
	}
	if err := checkZAM(int(z), int(a), int(m)); err != nil {
		return 0, newNuclideError(input, err.Error())
	}
	return Nuc(z*zFactor + a*aFactor + m), nil
}

func fromString(input string) (Nuc, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, newNuclideError(input, "empty")
	}
	if isDigits(s) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, newNuclideError(input, err.Error())
		}
		return fromInt(v, input)
	}

	if match := symbolFirst.FindStringSubmatch(s); match != nil {
		m := 0
		if match[3] != "" {
			m = 1
			if match[4] != "" {
				var err error
				if m, err = strconv.Atoi(match[4]); err != nil {
					return 0, newNuclideError(input, err.Error())
				}
			}
		}
		return fromParts(input, match[1], match[2], m)
	}

	if match := massFirst.FindStringSubmatch(s); match != nil {
		letters := match[2]
		if AtomicNumber(letters) == 0 && len(letters) > 1 && letters[0] == 'm' {
			return fromParts(input, letters[1:], match[1], 1)
		}
		return fromParts(input, letters, match[1], 0)
	}

	if match := natural.FindStringSubmatch(s); match != nil {
		if z := AtomicNumber(match[1]); z != 0 {
			return NewNuc(z, 0, 0)
		}
	}

	if isLetters(s) {
		z := AtomicNumber(s)
		if z == 0 {
			return 0, newNuclideError(input, "unknown element")
		}
		return NewNuc(z, 0, 0)
	}

	return 0, newNuclideError(input, "cannot tokenize")
}

func fromParts(input, element, mass string, m int) (Nuc, error) {
	z := AtomicNumber(element)
	if z == 0 {
		return 0, newNuclideError(input, fmt.Sprintf("unknown element %q", element))
	}
	a, err := strconv.Atoi(mass)
	if err != nil {
		return 0, newNuclideError(input, err.Error())
	}
	if a == 0 {
		return 0, newNuclideError(input, "mass number 0 is only valid as a bare element")
	}
	if err := checkZAM(z, a, m); err != nil {
		return 0, newNuclideError(input, err.Error())
	}
	return Nuc(z*zFactor + a*aFactor + m), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
