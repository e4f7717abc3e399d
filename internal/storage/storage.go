package storage

import (
	"errors"
	"sync"

	"github.com/eugenenazirov/novel-shell/internal/assets"
)

var (
	// ErrNotReady indicates the snapshot has not been published yet.
	ErrNotReady = errors.New("configuration snapshot is not loaded yet")
	// ErrAlreadyPublished indicates a second attempt to publish the snapshot.
	ErrAlreadyPublished = errors.New("configuration snapshot already published")
	// ErrNilSnapshot indicates an attempt to publish a nil snapshot.
	ErrNilSnapshot = errors.New("configuration snapshot must not be nil")
)

// Snapshot holds the process-wide configuration snapshot served to the front end.
type Snapshot interface {
	Publish(cfg *assets.AppConfig) error
	Get() (*assets.AppConfig, error)
}

// MemorySnapshot keeps a single write-once snapshot and guards access with a RWMutex.
type MemorySnapshot struct {
	mu  sync.RWMutex
	cfg *assets.AppConfig
}

// NewMemorySnapshot returns an empty snapshot cell.
func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{}
}

// Publish stores cfg. Only the first call succeeds; the stored value is never
// replaced afterwards.
func (s *MemorySnapshot) Publish(cfg *assets.AppConfig) error {
	if cfg == nil {
		return ErrNilSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg != nil {
		return ErrAlreadyPublished
	}
	s.cfg = cfg
	return nil
}

// Get returns the published snapshot. Every call returns the same instance;
// callers must treat it as read-only.
func (s *MemorySnapshot) Get() (*assets.AppConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return nil, ErrNotReady
	}
	return s.cfg, nil
}
