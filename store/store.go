// Copyright (c) 2023 The Shurium developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store persists UBIDistributor snapshots to an embedded
// key-value engine, using the exact byte layout ubi.UBIDistributor.Serialize
// and ubi.DeserializeDistributor already define.
package store

import (
	"errors"
	"sync"

	"github.com/decred/slog"
	"github.com/shurium/shurium/ubi"
	"github.com/syndtr/goleveldb/leveldb"
)

// distributorKey is the fixed key the distributor snapshot is stored
// under; this package keeps exactly one logical record per database.
var distributorKey = []byte("ubi-distributor-v1")

// log is the package-level logger, following the teacher's per-subsystem
// slog convention; UseLogger installs a real backend.
var log = slog.Disabled

// UseLogger installs logger as this package's logger, following the
// teacher's per-subsystem wiring; cmd/shuriumd calls this once at start
// with a logger obtained from internal/consensuslog.
func UseLogger(logger slog.Logger) { log = logger }

// ErrNoSnapshot is returned by LoadDistributor when the database holds no
// distributor snapshot yet, distinguishing "nothing saved" from a load
// failure the caller should treat as fatal.
var ErrNoSnapshot = errors.New("store: no distributor snapshot present")

// Store wraps a single leveldb database, serializing every read and write
// behind its own mutex independent of any UBIDistributor lock (§5).
type Store struct {
	mu sync.Mutex
	db *leveldb.DB
}

// Open opens (creating if necessary) the leveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveDistributor writes d's current state, serialized per §6, under the
// fixed distributor key. It calls d.Serialize, which holds d's own lock
// while it takes the snapshot, so the caller must not hold that lock.
func (s *Store) SaveDistributor(d *ubi.UBIDistributor) error {
	buf := d.Serialize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Put(distributorKey, buf, nil); err != nil {
		return err
	}
	log.Infof("saved distributor snapshot (%d bytes)", len(buf))
	return nil
}

// LoadDistributor reads the persisted snapshot and reconstructs a
// UBIDistributor against params. It returns ErrNoSnapshot if nothing has
// been saved yet, or a structural error from ubi.DeserializeDistributor if
// the persisted bytes are malformed — both cases the caller should treat
// as fatal-to-start per §7, except ErrNoSnapshot which means "start
// fresh".
func (s *Store) LoadDistributor(params ubi.Params) (*ubi.UBIDistributor, error) {
	s.mu.Lock()
	buf, err := s.db.Get(distributorKey, nil)
	s.mu.Unlock()

	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	d, err := ubi.DeserializeDistributor(buf, params)
	if err != nil {
		return nil, err
	}
	log.Infof("loaded distributor snapshot (%d bytes)", len(buf))
	return d, nil
}
