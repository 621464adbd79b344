// Package sqlite persists material libraries in SQLite.
//
// Each row holds one material as a msgpack document compressed with zstd,
// alongside a BLAKE2b fingerprint of the material that is checked on load.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/isotope"
	"github.com/zoobzio/isotope/library"
	"github.com/zoobzio/isotope/library/sqlite/migrations"
	"github.com/zoobzio/isotope/msgpack"
	_ "modernc.org/sqlite"
)

const migrationTable = "schema_migrations"

// Signals for storage events.
var (
	SignalSaved  = capitan.NewSignal("isotope.library.saved", "Material written to SQLite")
	SignalLoaded = capitan.NewSignal("isotope.library.loaded", "Material read from SQLite")
)

// ErrCorrupt indicates a stored payload does not match its fingerprint.
var ErrCorrupt = errors.New("stored material is corrupt")

// Store persists materials in SQLite. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	codec    isotope.Codec
	hasher   isotope.Hasher
	enc      *zstd.Encoder
	dec      *zstd.Decoder
	provider isotope.DataProvider
}

// Option configures a Store.
type Option func(*Store)

// WithProvider attaches p to every loaded material.
func WithProvider(p isotope.DataProvider) Option {
	return func(s *Store) { s.provider = p }
}

// Open opens the SQLite database at path and applies embedded migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	s := &Store{
		db:     db,
		codec:  msgpack.New(),
		hasher: isotope.Blake2bHasher(nil),
		enc:    enc,
		dec:    dec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database handle and compressors.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save writes m under name, replacing any previous row. Materials with an
// empty composition cannot be stored.
func (s *Store) Save(ctx context.Context, name string, m *isotope.Material) error {
	return s.save(ctx, s.db, name, m)
}

func (s *Store) save(ctx context.Context, db execer, name string, m *isotope.Material) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return isotope.InvalidArgument("material name is required")
	}
	if m == nil {
		return isotope.InvalidArgument("material %q is nil", name)
	}

	fingerprint, err := m.Fingerprint(s.hasher)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	doc, err := isotope.Marshal(s.codec, m)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	payload := s.enc.EncodeAll(doc, nil)

	_, err = db.ExecContext(ctx,
		`INSERT INTO materials (name, payload, fingerprint, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   payload = excluded.payload,
		   fingerprint = excluded.fingerprint,
		   updated_at = excluded.updated_at`,
		name, payload, fingerprint, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		err = fmt.Errorf("save %q: %w", name, err)
	}
	emitSaved(ctx, name, len(payload), err)
	return err
}

// Load reads the material stored under name.
func (s *Store) Load(ctx context.Context, name string) (*isotope.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var payload []byte
	var fingerprint string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fingerprint FROM materials WHERE name = ?`, name,
	).Scan(&payload, &fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", library.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}

	m, err := s.decode(payload, fingerprint)
	if err != nil {
		err = fmt.Errorf("load %q: %w", name, err)
	}
	emitLoaded(ctx, name, len(payload), err)
	return m, err
}

func (s *Store) decode(payload []byte, fingerprint string) (*isotope.Material, error) {
	doc, err := s.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var opts []isotope.Option
	if s.provider != nil {
		opts = append(opts, isotope.WithProvider(s.provider))
	}
	m, err := isotope.Unmarshal(s.codec, doc, opts...)
	if err != nil {
		return nil, err
	}
	got, err := m.Fingerprint(s.hasher)
	if err != nil {
		return nil, err
	}
	if got != fingerprint {
		return nil, fmt.Errorf("%w: fingerprint %s, stored %s", ErrCorrupt, got, fingerprint)
	}
	return m, nil
}

// Delete removes the material stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", library.ErrNotFound, name)
	}
	return nil
}

// List returns the stored names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan material name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return names, nil
}

// SaveLibrary writes every material of lib in one transaction.
func (s *Store) SaveLibrary(ctx context.Context, lib *library.Library) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save library: %w", err)
	}
	var saveErr error
	lib.Range(func(name string, m *isotope.Material) bool {
		saveErr = s.save(ctx, tx, name, m)
		return saveErr == nil
	})
	if saveErr != nil {
		_ = tx.Rollback()
		return saveErr
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save library: %w", err)
	}
	return nil
}

// LoadLibrary reads every stored material into a new Library.
func (s *Store) LoadLibrary(ctx context.Context) (*library.Library, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	lib := library.New()
	for _, name := range names {
		m, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := lib.Put(name, m); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// emitSaved emits an event when a material is written.
func emitSaved(ctx context.Context, name string, size int, err error) {
	fields := storedFields(name, size)
	if err != nil {
		capitan.Error(ctx, SignalSaved, append(fields, isotope.KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalSaved, fields...)
}

// emitLoaded emits an event when a material is read.
func emitLoaded(ctx context.Context, name string, size int, err error) {
	fields := storedFields(name, size)
	if err != nil {
		capitan.Error(ctx, SignalLoaded, append(fields, isotope.KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalLoaded, fields...)
}

func storedFields(name string, size int) []capitan.Field {
	return []capitan.Field{
		isotope.KeyMaterial.Field(name),
		isotope.KeySize.Field(size),
	}
}

// applyMigrations executes each embedded .sql file at most once.
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := db.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", file, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}
