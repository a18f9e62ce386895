package store

import (
	"os"
	"path/filepath"
	"sync"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
)

// FileCheckpointStore persists the scan checkpoint as a JSON document. At most
// one checkpoint exists per process; it survives crashes by design.
type FileCheckpointStore struct {
	path string
	mu   sync.Mutex
}

// NewCheckpointStore creates a checkpoint store rooted at dataDir.
func NewCheckpointStore(dataDir string) *FileCheckpointStore {
	return &FileCheckpointStore{path: filepath.Join(dataDir, "scan_state.json")}
}

// Load returns the persisted checkpoint, or nil when none exists.
func (s *FileCheckpointStore) Load() (*models.ScanCheckpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cp models.ScanCheckpoint
	if err := readJSON(s.path, &cp); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

// Save rewrites the checkpoint document.
func (s *FileCheckpointStore) Save(cp models.ScanCheckpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, cp)
}

// Clear removes the checkpoint. Clearing a missing checkpoint is a no-op.
func (s *FileCheckpointStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("remove", s.path, err)
	}
	return nil
}
