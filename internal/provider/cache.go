package provider

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trend-screener/internal/models"
)

// SnapshotCache is a TTL file cache of snapshots, one JSON file per symbol.
// Staleness is judged by file modification time.
type SnapshotCache struct {
	dir string
	ttl time.Duration
}

// NewSnapshotCache creates a snapshot cache under dir.
func NewSnapshotCache(dir string, ttl time.Duration) (*SnapshotCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotCache{dir: dir, ttl: ttl}, nil
}

// Get returns a cached snapshot if present and fresh.
func (c *SnapshotCache) Get(symbol string) (models.PriceSnapshot, bool) {
	path := c.pathFor(symbol)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= c.ttl {
		return models.PriceSnapshot{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.PriceSnapshot{}, false
	}

	var snap models.PriceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.PriceSnapshot{}, false
	}
	return snap, true
}

// Put stores a snapshot, resetting its TTL.
func (c *SnapshotCache) Put(symbol string, snap models.PriceSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(symbol), data, 0o644)
}

func (c *SnapshotCache) pathFor(symbol string) string {
	safe := strings.NewReplacer(".", "_", ":", "_", "/", "_").Replace(symbol)
	return filepath.Join(c.dir, safe+".json")
}
