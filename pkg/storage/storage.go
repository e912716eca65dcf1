// Package storage keeps imported table text in a pebble database so a
// server can load tables without the export directory.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/easytables/pkg/provider"
)

const (
	tablePrefix    = "table/"
	revisionPrefix = "rev/"
)

// TableStore is a pebble-backed provider.Provider. Every Import stamps the
// table with a fresh ksuid revision.
type TableStore struct {
	db *pebble.DB
}

// Open opens or creates a store at path.
func Open(path string) (*TableStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open table store at %s: %w", path, err)
	}
	return &TableStore{db: db}, nil
}

// Import replaces the stored text of a table and returns its new revision.
func (s *TableStore) Import(name, text string) (ksuid.KSUID, error) {
	rev := ksuid.New()

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set([]byte(tablePrefix+name), []byte(text), nil); err != nil {
		return ksuid.Nil, err
	}
	if err := batch.Set([]byte(revisionPrefix+name), rev.Bytes(), nil); err != nil {
		return ksuid.Nil, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to import table %s: %w", name, err)
	}
	return rev, nil
}

// Revision returns the revision of the last import of a table.
func (s *TableStore) Revision(name string) (ksuid.KSUID, error) {
	data, err := s.get(revisionPrefix + name)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ksuid.Nil, provider.Unavailable(name, err)
		}
		return ksuid.Nil, err
	}
	return ksuid.FromBytes(data)
}

// Fetch implements provider.Provider.
func (s *TableStore) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.get(tablePrefix + name)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", provider.Unavailable(name, err)
		}
		return "", fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return string(data), nil
}

// ImportDir imports every named table found in a directory provider. Tables
// the directory does not have are skipped and reported in missing.
func (s *TableStore) ImportDir(ctx context.Context, dir *provider.DirProvider, names []string) (imported map[string]ksuid.KSUID, missing []string, err error) {
	imported = make(map[string]ksuid.KSUID, len(names))
	for _, name := range names {
		text, err := dir.Fetch(ctx, name)
		if err != nil {
			if errors.Is(err, provider.ErrTableUnavailable) {
				missing = append(missing, name)
				continue
			}
			return imported, missing, err
		}
		rev, err := s.Import(name, text)
		if err != nil {
			return imported, missing, err
		}
		imported[name] = rev
	}
	return imported, missing, nil
}

// Close closes the underlying database.
func (s *TableStore) Close() error {
	return s.db.Close()
}

// get copies the value out before releasing pebble's buffer.
func (s *TableStore) get(key string) ([]byte, error) {
	data, closer, err := s.db.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
