package storage

import (
	"sync/atomic"
	"time"

	"github.com/guttosm/stockaigent/internal/domain/models"
)

// SnapshotStore holds the single current Snapshot together with the time
// it was built. Readers always observe a fully built Snapshot.
type SnapshotStore interface {
	Load() (snap *models.Snapshot, builtAt time.Time, ok bool)
	Store(snap *models.Snapshot, builtAt time.Time)
}

type entry struct {
	snap    *models.Snapshot
	builtAt time.Time
}

type memorySnapshotStore struct {
	current atomic.Pointer[entry]
}

// NewMemorySnapshotStore returns an empty in-process SnapshotStore.
func NewMemorySnapshotStore() SnapshotStore {
	return &memorySnapshotStore{}
}

// Load returns the current snapshot, or ok=false when none was stored yet.
func (s *memorySnapshotStore) Load() (*models.Snapshot, time.Time, bool) {
	e := s.current.Load()
	if e == nil {
		return nil, time.Time{}, false
	}
	return e.snap, e.builtAt, true
}

// Store replaces the current snapshot. A nil snapshot is ignored.
func (s *memorySnapshotStore) Store(snap *models.Snapshot, builtAt time.Time) {
	if snap == nil {
		return
	}
	s.current.Store(&entry{snap: snap, builtAt: builtAt})
}
