// Package bolt persists material libraries in a BoltDB file.
//
// Materials are stored as compact JSON documents in a single bucket keyed by
// library name, so the file stays inspectable with generic bbolt tooling.
package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/zoobzio/isotope"
	"github.com/zoobzio/isotope/json"
	"github.com/zoobzio/isotope/library"
	"go.etcd.io/bbolt"
)

const materialBucket = "materials"

// Store provides a BoltDB-backed material library.
type Store struct {
	db       *bbolt.DB
	codec    isotope.Codec
	provider isotope.DataProvider
}

// Option configures a Store.
type Option func(*Store)

// WithProvider attaches p to every loaded material.
func WithProvider(p isotope.DataProvider) Option {
	return func(s *Store) { s.provider = p }
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	s := &Store{db: db, codec: json.Compact()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes m under name, replacing any previous entry.
func (s *Store) Save(ctx context.Context, name string, m *isotope.Material) error {
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

	payload, err := isotope.Marshal(s.codec, m)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(materialBucket))
		if bucket == nil {
			return fmt.Errorf("material bucket is missing")
		}
		return bucket.Put([]byte(name), payload)
	})
}

// Load reads the material stored under name.
func (s *Store) Load(ctx context.Context, name string) (*isotope.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(materialBucket))
		if bucket == nil {
			return fmt.Errorf("material bucket is missing")
		}
		v := bucket.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %q", library.ErrNotFound, name)
		}
		// v is only valid inside the transaction.
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var opts []isotope.Option
	if s.provider != nil {
		opts = append(opts, isotope.WithProvider(s.provider))
	}
	m, err := isotope.Unmarshal(s.codec, payload, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return m, nil
}

// Delete removes the material stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(materialBucket))
		if bucket == nil {
			return fmt.Errorf("material bucket is missing")
		}
		if bucket.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %q", library.ErrNotFound, name)
		}
		return bucket.Delete([]byte(name))
	})
}

// List returns the stored names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(materialBucket))
		if bucket == nil {
			return fmt.Errorf("material bucket is missing")
		}
		// bbolt iterates keys in byte order.
		return bucket.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SaveLibrary writes every material of lib in one transaction.
func (s *Store) SaveLibrary(ctx context.Context, lib *library.Library) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(materialBucket))
		if bucket == nil {
			return fmt.Errorf("material bucket is missing")
		}
		var putErr error
		lib.Range(func(name string, m *isotope.Material) bool {
			var payload []byte
			payload, putErr = isotope.Marshal(s.codec, m)
			if putErr != nil {
				putErr = fmt.Errorf("save %q: %w", name, putErr)
				return false
			}
			putErr = bucket.Put([]byte(name), payload)
			return putErr == nil
		})
		return putErr
	})
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

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(materialBucket))
		if err != nil {
			return fmt.Errorf("create material bucket: %w", err)
		}
		return nil
	})
}
