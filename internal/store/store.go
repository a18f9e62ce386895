// Package store provides data persistence for scan state, results and alert
// history. Each document is a single JSON file owned by one store and written
// atomically (write-new-then-rename), so concurrent readers never observe a
// torn write.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
)

// CheckpointStore persists the cursor of the active scan.
type CheckpointStore interface {
	Load() (*models.ScanCheckpoint, error)
	Save(cp models.ScanCheckpoint) error
	Clear() error
}

// ResultStore accumulates qualifying stocks for the current scan type.
type ResultStore interface {
	Append(summary models.StockSummary, scanType models.ScanType) error
	List() (models.ScanResultSet, error)
	Reset(scanType models.ScanType) error
	Complete(totalScanned int) error
}

// writeJSONAtomic marshals v and replaces path in one rename, fsyncing the
// temp file first.
func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewStorageError("marshal", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStorageError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.NewStorageError("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("rename", path, err)
	}
	return nil
}

// readJSON unmarshals path into v. Returns os.ErrNotExist wrapped in a
// StorageError when the file is missing.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewStorageError("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewStorageError("unmarshal", path, err)
	}
	return nil
}
