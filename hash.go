package isotope

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Hasher performs deterministic one-way hashing for material fingerprints.
type Hasher interface {
	// Hash returns the hex-encoded hash of data.
	Hash(data []byte) (string, error)
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sha512Hasher implements SHA-512 hashing.
type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(data []byte) (string, error) {
	sum := sha512.Sum512(data)
	return hex.EncodeToString(sum[:]), nil
}

// blake2bHasher implements BLAKE2b-256 hashing, optionally keyed.
type blake2bHasher struct {
	key []byte
}

// Blake2bHasher returns a BLAKE2b-256 hasher. A non-empty key (up to 64
// bytes) produces a keyed MAC.
func Blake2bHasher(key []byte) Hasher {
	return &blake2bHasher{key: key}
}

func (h *blake2bHasher) Hash(data []byte) (string, error) {
	d, err := blake2b.New256(h.key)
	if err != nil {
		return "", fmt.Errorf("blake2b: %w", err)
	}
	d.Write(data)
	return hex.EncodeToString(d.Sum(nil)), nil
}

// Fingerprint hashes m's canonical content: bulk fields, sorted metadata
// and the normalized composition. Strings are quoted so no name or metadata
// value can imitate another line.
func (m *Material) Fingerprint(h Hasher) (string, error) {
	norm, err := m.normalizedView()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "name\t%q\n", m.name)
	fmt.Fprintf(&b, "mass\t%s\n", formatExact(m.mass))
	fmt.Fprintf(&b, "density\t%s\n", formatExact(m.density))
	fmt.Fprintf(&b, "apm\t%s\n", formatExact(m.atomsPerMolecule))
	for _, key := range m.MetadataKeys() {
		fmt.Fprintf(&b, "meta\t%q\t%q\n", key, m.metadata[key])
	}
	for n, q := range norm.All() {
		fmt.Fprintf(&b, "%d\t%s\n", int(n), formatExact(q))
	}
	return h.Hash([]byte(b.String()))
}

// formatExact renders f with the fewest digits that round-trip.
func formatExact(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
