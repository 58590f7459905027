// Package settings persists user preferences between runs as string key-value
// pairs in an SQLite database.
package settings

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// Keys used by pbrpack.
const (
	KeyInitialized = "initialized"
	KeyOutputDir   = "output_dir"
	KeyConverter   = "converter_path"
	KeyResolution  = "resolution"
	KeyBaseName    = "base_name"
	KeyConvention  = "normal_convention"
)

// TextureKey returns the key for an input texture path.
func TextureKey(channel string) string { return "textures/" + channel }

// TypeKey returns the key for whether an output variant is selected.
func TypeKey(code string) string { return "types/" + code }

// A Store is a persistent key-value store.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database location in the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pbrpack", "settings.db"), nil
}

// Open opens or creates the store at path. A new store, or one which was
// never marked initialized, is cleared and marked initialized.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create settings directory")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "could not open settings %q", path)
	}
	s := &Store{db: db}
	ok, err := s.Bool(ctx, KeyInitialized)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !ok {
		if err := s.Clear(ctx); err != nil {
			db.Close()
			return nil, err
		}
		if err := s.SetBool(ctx, KeyInitialized, true); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the value for a key, and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Set stores a value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// SetAll stores several values in one transaction.
func (s *Store) SetAll(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for k, v := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
             ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Bool returns a boolean value. Missing or unparsable values are false.
func (s *Store) Bool(ctx context.Context, key string) (bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

// SetBool stores a boolean value as "true" or "false".
func (s *Store) SetBool(ctx context.Context, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// Clear removes every value, including the initialized marker.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}

// A Pair is a key and its value.
type Pair struct {
	Key   string
	Value string
}

// All returns every stored value, sorted by key.
func (s *Store) All(ctx context.Context) ([]Pair, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Key, &p.Value); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
