// Package kvstore is a scoped key-value store on the local sqlite database.
// Values are read and written whole. Concurrent writers of the same key
// follow last write wins and there are no transactions across keys.
package kvstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("key not found")

type Store struct {
	db    *sql.DB
	scope string
}

// Entry is one stored value with its last write time.
type Entry struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

func New(db *sql.DB, scope string) (*Store, error) {
	scope = strings.TrimSpace(strings.ToLower(scope))
	if scope == "" {
		return nil, fmt.Errorf("store scope is required")
	}
	return &Store{db: db, scope: scope}, nil
}

func (s *Store) Scope() string { return s.scope }

func (s *Store) Get(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	var value string
	err = s.db.QueryRow(`SELECT value FROM kv_store WHERE scope = ? AND key = ?`, s.scope, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s/%s: %w", s.scope, key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", s.scope, key, err)
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
INSERT INTO kv_store(scope, key, value, updated_at)
VALUES(?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(scope, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, s.scope, key, value)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", s.scope, key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM kv_store WHERE scope = ? AND key = ?`, s.scope, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", s.scope, key, err)
	}
	return nil
}

// List returns every entry of the scope ordered by key.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM kv_store WHERE scope = ? ORDER BY key ASC`, s.scope)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.scope, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", s.scope, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.scope, err)
	}
	return entries, nil
}

// GetJSON decodes the value at key into out. A missing key leaves out
// untouched and reports false.
func GetJSON[T any](s *Store, key string, out *T) (bool, error) {
	raw, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", s.scope, key, err)
	}
	return true, nil
}

func SetJSON[T any](s *Store, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", s.scope, key, err)
	}
	return s.Set(key, string(b))
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("store key is required")
	}
	return key, nil
}
