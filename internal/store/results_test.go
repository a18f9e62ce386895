package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"trend-screener/internal/models"
)

func summary(symbol string) models.StockSummary {
	return models.StockSummary{Symbol: symbol, Name: symbol, Price: 100, Score: 9, FoundAt: time.Now()}
}

func TestResultAppendAndList(t *testing.T) {
	s := NewResultStore(t.TempDir())

	if err := s.Append(summary("A"), models.ScanFull); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(summary("B"), models.ScanFull); err != nil {
		t.Fatal(err)
	}

	set, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if set.ScanType != models.ScanFull {
		t.Errorf("ScanType = %q", set.ScanType)
	}
	if len(set.Stocks) != 2 {
		t.Errorf("stocks = %+v, want 2", set.Stocks)
	}
	if set.CompletedAt != nil {
		t.Error("CompletedAt set before Complete()")
	}
}

func TestResultAppendIdempotent(t *testing.T) {
	s := NewResultStore(t.TempDir())

	first := summary("A")
	first.Price = 100
	if err := s.Append(first, models.ScanFull); err != nil {
		t.Fatal(err)
	}

	// Re-appending after a resume must not duplicate or overwrite.
	second := summary("A")
	second.Price = 105
	if err := s.Append(second, models.ScanFull); err != nil {
		t.Fatal(err)
	}

	set, _ := s.List()
	if len(set.Stocks) != 1 {
		t.Fatalf("stocks = %+v, want 1", set.Stocks)
	}
	if set.Stocks[0].Price != 100 {
		t.Errorf("duplicate append overwrote the original record: %+v", set.Stocks[0])
	}
}

func TestResultTypeSwitchResets(t *testing.T) {
	s := NewResultStore(t.TempDir())

	if err := s.Append(summary("A"), models.ScanQuick); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(summary("B"), models.ScanFull); err != nil {
		t.Fatal(err)
	}

	set, _ := s.List()
	if set.ScanType != models.ScanFull {
		t.Errorf("ScanType = %q, want full", set.ScanType)
	}
	if len(set.Stocks) != 1 || set.Stocks[0].Symbol != "B" {
		t.Errorf("stocks = %+v, want only B", set.Stocks)
	}
}

func TestResultComplete(t *testing.T) {
	s := NewResultStore(t.TempDir())
	stamp := time.Date(2026, 8, 14, 16, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return stamp }

	if err := s.Append(summary("A"), models.ScanAll); err != nil {
		t.Fatal(err)
	}
	if err := s.Complete(2200); err != nil {
		t.Fatal(err)
	}

	set, _ := s.List()
	if set.CompletedAt == nil || !set.CompletedAt.Equal(stamp) {
		t.Errorf("CompletedAt = %v, want %v", set.CompletedAt, stamp)
	}
	if set.TotalScanned != 2200 {
		t.Errorf("TotalScanned = %d", set.TotalScanned)
	}
	if len(set.Stocks) != 1 {
		t.Errorf("Complete() must keep stocks, got %+v", set.Stocks)
	}
}

func TestResultReset(t *testing.T) {
	s := NewResultStore(t.TempDir())

	if err := s.Append(summary("A"), models.ScanQuick); err != nil {
		t.Fatal(err)
	}
	if err := s.Complete(50); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(models.ScanQuick); err != nil {
		t.Fatal(err)
	}

	set, _ := s.List()
	if len(set.Stocks) != 0 || set.CompletedAt != nil {
		t.Errorf("Reset() left state behind: %+v", set)
	}
}

func TestResultCorruptFileYieldsEmptySet(t *testing.T) {
	dir := t.TempDir()
	s := NewResultStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "scan_results.json"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := s.List()
	if err != nil {
		t.Fatalf("List() on corrupt file: %v", err)
	}
	if len(set.Stocks) != 0 {
		t.Errorf("stocks = %+v, want empty", set.Stocks)
	}
}
