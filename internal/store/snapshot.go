// Package store holds the durable collaborators of the engine: the
// Bolt-backed snapshot store and the sqlite transaction history. Both are
// best-effort from the engine's point of view; in-memory state stays
// authoritative when a write fails.
package store

import (
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Gangsta686/HabitForgeApp2/internal/models"
)

var (
	bucketAuth = []byte("auth")

	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("record not found")
)

// snapshotKey is the single logical key the auth snapshot lives under.
const snapshotKey = "habitforge_auth_state_v1"

// Snapshots is the key-value persistent store for the auth snapshot.
type Snapshots struct {
	db *bolt.DB
}

// OpenSnapshots opens (and migrates) the Bolt database at path.
func OpenSnapshots(path string) (*Snapshots, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAuth)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Snapshots{db: db}, nil
}

// Close releases the underlying Bolt handle.
func (s *Snapshots) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the raw blob stored under key, or ErrNotFound.
func (s *Snapshots) Get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketAuth).Get([]byte(key))
		if raw == nil {
			return ErrNotFound
		}
		out = append(out, raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Set stores blob under key.
func (s *Snapshots) Set(key string, blob []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuth).Put([]byte(key), blob)
	})
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Snapshots) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuth).Delete([]byte(key))
	})
}

// LoadSnapshot reads the stored auth snapshot. A missing snapshot returns
// (nil, nil): first launch is not an error.
func (s *Snapshots) LoadSnapshot() (*models.AuthSnapshot, error) {
	raw, err := s.Get(snapshotKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.AuthSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveSnapshot writes the auth snapshot under the fixed key.
func (s *Snapshots) SaveSnapshot(snap models.AuthSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.Set(snapshotKey, raw)
}

// ClearSnapshot drops the stored snapshot.
func (s *Snapshots) ClearSnapshot() error {
	return s.Delete(snapshotKey)
}
