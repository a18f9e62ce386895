package store

import (
	"path/filepath"
	"sync"
	"time"

	"trend-screener/internal/models"
)

// FileResultStore persists the result set of the current scan type as a JSON
// document. The set is unique by symbol and implicitly reset whenever the
// scan type changes.
type FileResultStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewResultStore creates a result store rooted at dataDir.
func NewResultStore(dataDir string) *FileResultStore {
	return &FileResultStore{
		path: filepath.Join(dataDir, "scan_results.json"),
		now:  time.Now,
	}
}

// Append adds a qualifying stock. A stored scan type different from scanType
// resets the whole set first; a duplicate symbol is a no-op, which makes
// re-evaluation after a crash or resume harmless.
func (s *FileResultStore) Append(summary models.StockSummary, scanType models.ScanType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.loadLocked()
	if set.ScanType != scanType {
		set = models.ScanResultSet{ScanType: scanType, Stocks: []models.StockSummary{}}
	}

	for _, existing := range set.Stocks {
		if existing.Symbol == summary.Symbol {
			return nil
		}
	}

	set.Stocks = append(set.Stocks, summary)
	return writeJSONAtomic(s.path, set)
}

// List returns the current set plus metadata.
func (s *FileResultStore) List() (models.ScanResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(), nil
}

// Reset discards all results and rebinds the store to scanType.
func (s *FileResultStore) Reset(scanType models.ScanType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, models.ScanResultSet{
		ScanType: scanType,
		Stocks:   []models.StockSummary{},
	})
}

// Complete stamps the set as finished.
func (s *FileResultStore) Complete(totalScanned int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.loadLocked()
	completed := s.now()
	set.CompletedAt = &completed
	set.TotalScanned = totalScanned
	return writeJSONAtomic(s.path, set)
}

// loadLocked reads the document, returning an empty set when the file is
// missing or corrupt. Reads are best-effort; writes carry the durability
// guarantee.
func (s *FileResultStore) loadLocked() models.ScanResultSet {
	var set models.ScanResultSet
	if err := readJSON(s.path, &set); err != nil {
		return models.ScanResultSet{Stocks: []models.StockSummary{}}
	}
	if set.Stocks == nil {
		set.Stocks = []models.StockSummary{}
	}
	return set
}
