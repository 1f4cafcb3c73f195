package authcore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// pollInterval bounds how often TryLockContext re-attempts the filesystem
// lock, keeping lock acquisition responsive to cancellation.
const pollInterval = 100 * time.Millisecond

// Updater mutates a fresh snapshot of the store and reports whether a write
// is needed.
type Updater func(fresh *AuthProfileStore) (write bool)

// Store persists an AuthProfileStore atomically and serializes mutations
// via an exclusive file lock scoped to the store's directory.
type Store struct {
	path string

	// mu additionally serializes in-process callers; the flock guards
	// against other processes. Holding both means a single process never
	// needs to round-trip through the filesystem lock to serialize with
	// itself.
	mu   sync.Mutex
	lock *flock.Flock
}

// NewStore opens a locked store backed by the JSON document at path. The
// lock file lives alongside it (path + ".lock") rather than on the document
// itself, which gets replaced out from under an open lock by the atomic
// rename.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Update acquires the exclusive lock, re-reads the store from disk, invokes
// updater on the fresh snapshot, and on a requested write, atomically
// persists it. Returns the post-update store, or (nil, nil) if the updater
// declined. Lock acquisition is interruptible by ctx cancellation.
func (s *Store) Update(ctx context.Context, updater Updater) (*AuthProfileStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, pollInterval)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ctx.Err()
	}
	defer s.lock.Unlock()

	fresh, err := s.read()
	if err != nil {
		return nil, err
	}

	if !updater(fresh) {
		return nil, nil
	}

	if err := atomicWriteJSON(s.path, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Save is the fallback write path, used only when locking is unavailable: a
// straightforward atomic write with no read-modify-write semantics. Callers
// invoking Save race with any concurrent lock-holder.
func (s *Store) Save(store *AuthProfileStore) error {
	return atomicWriteJSON(s.path, store)
}

// Load reads the store document directly, without acquiring the lock. It is
// the entry point for process start.
func (s *Store) Load() (*AuthProfileStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() (*AuthProfileStore, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return EmptyStore(), nil
	}
	if err != nil {
		return nil, err
	}
	var store AuthProfileStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, err
	}
	if store.Version == 0 {
		store.Version = StoreVersion
	}
	return &store, nil
}

// atomicWriteJSON serializes v to a sibling temporary file in the same
// directory, fsyncs it, then renames it over path, so a crash between write
// and rename can never leave the target file partially written.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".authcore-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
