package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"trend-screener/internal/models"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universe.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSymbolsQuick(t *testing.T) {
	s := NewSource("", 50, zerolog.Nop())

	symbols, err := s.Symbols(models.ScanQuick)
	if err != nil {
		t.Fatalf("Symbols(quick) error: %v", err)
	}
	if len(symbols) != 50 {
		t.Errorf("quick universe size = %d, want 50", len(symbols))
	}
	if symbols[0] != "RELIANCE" {
		t.Errorf("quick universe starts with %q, want RELIANCE", symbols[0])
	}
}

func TestSymbolsFull(t *testing.T) {
	s := NewSource("", 50, zerolog.Nop())

	symbols, err := s.Symbols(models.ScanFull)
	if err != nil {
		t.Fatalf("Symbols(full) error: %v", err)
	}
	if len(symbols) != len(nifty500) {
		t.Errorf("full universe size = %d, want %d", len(symbols), len(nifty500))
	}
}

func TestSymbolsAllFromCSV(t *testing.T) {
	path := writeCSV(t, "RELIANCE.NS,Reliance Industries\nTCS.NS,Tata Consultancy\nRELIANCE.NS,Duplicate\nABC-RE.NS,Rights Issue\n")
	s := NewSource(path, 50, zerolog.Nop())

	symbols, err := s.Symbols(models.ScanAll)
	if err != nil {
		t.Fatalf("Symbols(all) error: %v", err)
	}
	want := []string{"RELIANCE", "TCS"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], want[i])
		}
	}
}

func TestSymbolsAllFallsBack(t *testing.T) {
	s := NewSource(filepath.Join(t.TempDir(), "missing.csv"), 50, zerolog.Nop())

	symbols, err := s.Symbols(models.ScanAll)
	if err != nil {
		t.Fatalf("Symbols(all) error: %v", err)
	}
	if len(symbols) != len(nifty500) {
		t.Errorf("fallback universe size = %d, want built-in %d", len(symbols), len(nifty500))
	}
}

func TestSymbolsInvalidType(t *testing.T) {
	s := NewSource("", 50, zerolog.Nop())
	if _, err := s.Symbols(models.ScanType("bogus")); err == nil {
		t.Error("Symbols(bogus) = nil error, want invalid scan type")
	}
}

func TestNames(t *testing.T) {
	path := writeCSV(t, "RELIANCE.NS,Reliance Industries\nTCS.NS,\n")
	s := NewSource(path, 50, zerolog.Nop())

	names := s.Names()
	if names["RELIANCE"] != "Reliance Industries" {
		t.Errorf("names[RELIANCE] = %q", names["RELIANCE"])
	}
	if names["TCS"] != "TCS" {
		t.Errorf("empty name should fall back to symbol, got %q", names["TCS"])
	}
}
