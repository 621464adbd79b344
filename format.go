package isotope

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Format renders a Material into an external text encoding.
//
// Render must treat the Material as read-only and must validate fully before
// producing output: on error it returns no text. Identical Material state
// must yield byte-identical output.
type Format interface {
	// Name identifies the target format (e.g., "mcnp").
	Name() string

	// Render encodes m.
	Render(m *Material) (string, error)
}

// FormatConfig carries the settings shared by registered formats. Each
// format reads the fields it understands and ignores the rest.
type FormatConfig struct {
	Number          int    // Material number for formats that index materials
	Library         string // Cross-section library suffix, e.g. ".70c"
	Basis           Basis  // Fraction basis; empty selects the format default
	Unsigned        bool   // Disable the negative sign on mass fractions
	MetastableAlias bool   // Encode metastable states in the ZAID
}

// Factory builds a configured Format.
type Factory func(cfg FormatConfig) (Format, error)

var (
	formats   = make(map[string]Factory)
	formatsMu sync.RWMutex
)

// RegisterFormat makes a Format available by name. Format packages call it
// from init. Registering a name twice panics.
func RegisterFormat(name string, factory Factory) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	if factory == nil {
		panic("isotope: RegisterFormat factory is nil")
	}
	if _, dup := formats[name]; dup {
		panic("isotope: RegisterFormat called twice for " + name)
	}
	formats[name] = factory
}

// NewFormat builds the Format registered under name.
func NewFormat(name string, cfg FormatConfig) (Format, error) {
	formatsMu.RLock()
	factory, ok := formats[name]
	formatsMu.RUnlock()
	if !ok {
		return nil, &unknownFormatError{name: name, known: Formats()}
	}
	return factory(cfg)
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type unknownFormatError struct {
	name  string
	known []string
}

func (e *unknownFormatError) Error() string {
	return ErrUnknownFormat.Error() + " " + e.name + " (known: " + joinNames(e.known) + ")"
}

func (e *unknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// RenderWith runs f over m and reports the operation through capitan signals.
func RenderWith(ctx context.Context, f Format, m *Material) (string, error) {
	start := time.Now()
	emitRenderStart(ctx, f.Name(), m.Name(), m.Len())
	out, err := f.Render(m)
	if err != nil {
		out = ""
	}
	emitRenderComplete(ctx, f.Name(), m.Name(), len(out), time.Since(start), err)
	return out, err
}
