// Package universe resolves the set of symbols a scan walks over.
package universe

import (
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
)

// csvRow is one line of the universe CSV. The file has no header row:
// the first column is the symbol (with or without an exchange suffix),
// the second an optional company name. Fields bind by position.
type csvRow struct {
	Symbol string
	Name   string
}

// Source resolves scan universes. Quick and full scans use the built-in
// list; the all-stocks scan reads the broader CSV universe, falling back
// to the built-in list when the file is missing.
type Source struct {
	csvPath   string
	quickSize int
	logger    zerolog.Logger
}

// NewSource creates a universe Source. csvPath may be empty, in which
// case the all-stocks scan degrades to the built-in list.
func NewSource(csvPath string, quickSize int, logger zerolog.Logger) *Source {
	if quickSize <= 0 {
		quickSize = 50
	}
	return &Source{
		csvPath:   csvPath,
		quickSize: quickSize,
		logger:    logger.With().Str("component", "universe").Logger(),
	}
}

// Symbols returns the universe for a scan type.
func (s *Source) Symbols(scanType models.ScanType) ([]string, error) {
	switch scanType {
	case models.ScanQuick:
		full := Nifty500()
		if len(full) > s.quickSize {
			full = full[:s.quickSize]
		}
		return full, nil
	case models.ScanFull:
		return Nifty500(), nil
	case models.ScanAll:
		symbols, err := s.loadCSV()
		if err != nil {
			s.logger.Warn().Err(err).Str("path", s.csvPath).
				Msg("universe CSV unavailable, falling back to built-in list")
			return Nifty500(), nil
		}
		return symbols, nil
	default:
		return nil, errors.ErrInvalidScanType
	}
}

// Names returns symbol to company-name mappings from the CSV universe.
// Missing file yields an empty map.
func (s *Source) Names() map[string]string {
	names := make(map[string]string)
	rows, err := s.readRows()
	if err != nil {
		return names
	}
	for _, row := range rows {
		symbol := normalizeSymbol(row.Symbol)
		if symbol == "" {
			continue
		}
		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = symbol
		}
		names[symbol] = name
	}
	return names
}

func (s *Source) loadCSV() ([]string, error) {
	rows, err := s.readRows()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		symbol := normalizeSymbol(row.Symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	if len(symbols) == 0 {
		return nil, errors.Wrap(os.ErrNotExist, "universe CSV has no usable symbols")
	}

	s.logger.Info().Int("count", len(symbols)).Msg("loaded universe from CSV")
	return symbols, nil
}

func (s *Source) readRows() ([]csvRow, error) {
	if s.csvPath == "" {
		return nil, os.ErrNotExist
	}

	f, err := os.Open(s.csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []csvRow
	if err := gocsv.UnmarshalWithoutHeaders(f, &rows); err != nil {
		return nil, errors.Wrap(err, "parsing universe CSV")
	}
	return rows, nil
}

// normalizeSymbol strips the exchange suffix and rejects rights-issue
// entries, which trade under a -RE suffix and have no usable history.
func normalizeSymbol(raw string) string {
	symbol := strings.TrimSpace(raw)
	symbol = strings.TrimSuffix(symbol, ".NS")
	if symbol == "" || strings.HasSuffix(symbol, "-RE") {
		return ""
	}
	return symbol
}
