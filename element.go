package isotope

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxZ is the largest atomic number a Nuc may carry.
const MaxZ = 150

// symbols holds element symbols indexed by atomic number.
var symbols = [...]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// names holds lower-case element names indexed by atomic number.
var names = [...]string{
	"",
	"hydrogen", "helium", "lithium", "beryllium", "boron", "carbon", "nitrogen", "oxygen", "fluorine", "neon",
	"sodium", "magnesium", "aluminum", "silicon", "phosphorus", "sulfur", "chlorine", "argon", "potassium", "calcium",
	"scandium", "titanium", "vanadium", "chromium", "manganese", "iron", "cobalt", "nickel", "copper", "zinc",
	"gallium", "germanium", "arsenic", "selenium", "bromine", "krypton", "rubidium", "strontium", "yttrium", "zirconium",
	"niobium", "molybdenum", "technetium", "ruthenium", "rhodium", "palladium", "silver", "cadmium", "indium", "tin",
	"antimony", "tellurium", "iodine", "xenon", "cesium", "barium", "lanthanum", "cerium", "praseodymium", "neodymium",
	"promethium", "samarium", "europium", "gadolinium", "terbium", "dysprosium", "holmium", "erbium", "thulium", "ytterbium",
	"lutetium", "hafnium", "tantalum", "tungsten", "rhenium", "osmium", "iridium", "platinum", "gold", "mercury",
	"thallium", "lead", "bismuth", "polonium", "astatine", "radon", "francium", "radium", "actinium", "thorium",
	"protactinium", "uranium", "neptunium", "plutonium", "americium", "curium", "berkelium", "californium", "einsteinium", "fermium",
	"mendelevium", "nobelium", "lawrencium", "rutherfordium", "dubnium", "seaborgium", "bohrium", "hassium", "meitnerium", "darmstadtium",
	"roentgenium", "copernicium", "nihonium", "flerovium", "moscovium", "livermorium", "tennessine", "oganesson",
}

// IUPAC systematic element roots, indexed by digit.
var systematicLetters = [...]byte{'n', 'u', 'b', 't', 'q', 'p', 'h', 's', 'o', 'e'}

var (
	symbolToZ = make(map[string]int, MaxZ)
	nameToZ   = make(map[string]int, len(names))
)

func init() {
	for z := 1; z <= MaxZ; z++ {
		symbolToZ[Symbol(z)] = z
	}
	for z, name := range names {
		if name != "" {
			nameToZ[name] = z
		}
	}
	// Common alternate spellings.
	nameToZ["aluminium"] = 13
	nameToZ["caesium"] = 55
	nameToZ["sulphur"] = 16
}

// Symbol returns the element symbol for atomic number z, or "" when z is out of range.
// Elements past oganesson use IUPAC systematic symbols (119 is "Uue").
func Symbol(z int) string {
	if z < 1 || z > MaxZ {
		return ""
	}
	if z < len(symbols) {
		return symbols[z]
	}
	digits := []byte{byte(z / 100), byte(z / 10 % 10), byte(z % 10)}
	sym := make([]byte, len(digits))
	for i, d := range digits {
		sym[i] = systematicLetters[d]
	}
	return titleCase(string(sym))
}

// AtomicNumber resolves an element symbol or English element name to its
// atomic number. Lookup is case-insensitive. It returns 0 when unknown.
func AtomicNumber(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if z, ok := symbolToZ[titleCase(s)]; ok {
		return z
	}
	if z, ok := nameToZ[strings.ToLower(s)]; ok {
		return z
	}
	return 0
}

// titleCase upper-cases the first letter and lower-cases the rest.
// A Caser is stateful, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
