package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"trend-screener/internal/models"
)

// ScanArchive records completed scan runs in SQLite so past runs stay
// queryable after the JSON result document is reset by the next scan.
type ScanArchive struct {
	db *sql.DB
}

// NewScanArchive opens (and if needed initializes) the archive database.
func NewScanArchive(dbPath string) (*ScanArchive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	a := &ScanArchive{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return a, nil
}

func (a *ScanArchive) initSchema() error {
	schema := `
	-- Completed scan runs
	CREATE TABLE IF NOT EXISTS scan_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_type TEXT NOT NULL,
		completed_at DATETIME NOT NULL,
		total_scanned INTEGER NOT NULL,
		found INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Qualifying stocks per run
	CREATE TABLE IF NOT EXISTS scan_run_stocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		name TEXT,
		price REAL NOT NULL,
		score INTEGER NOT NULL,
		found_at DATETIME NOT NULL,
		FOREIGN KEY (run_id) REFERENCES scan_runs(id),
		UNIQUE(run_id, symbol)
	);

	CREATE INDEX IF NOT EXISTS idx_scan_runs_completed ON scan_runs(completed_at);
	CREATE INDEX IF NOT EXISTS idx_run_stocks_symbol ON scan_run_stocks(symbol);
	`
	_, err := a.db.Exec(schema)
	return err
}

// ArchivedRun is one completed scan run.
type ArchivedRun struct {
	ID           int64
	ScanType     models.ScanType
	CompletedAt  time.Time
	TotalScanned int
	Found        int
}

// SaveRun archives a completed result set and returns the run ID.
func (a *ScanArchive) SaveRun(ctx context.Context, set models.ScanResultSet) (int64, error) {
	if set.CompletedAt == nil {
		return 0, fmt.Errorf("result set is not completed")
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scan_runs (scan_type, completed_at, total_scanned, found) VALUES (?, ?, ?, ?)`,
		string(set.ScanType), set.CompletedAt.UTC(), set.TotalScanned, len(set.Stocks))
	if err != nil {
		return 0, fmt.Errorf("insert scan run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("scan run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO scan_run_stocks (run_id, symbol, name, price, score, found_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare stock insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range set.Stocks {
		if _, err := stmt.ExecContext(ctx, runID, s.Symbol, s.Name, s.Price, s.Score, s.FoundAt.UTC()); err != nil {
			return 0, fmt.Errorf("insert stock %s: %w", s.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive tx: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (a *ScanArchive) ListRuns(ctx context.Context, limit int) ([]ArchivedRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, scan_type, completed_at, total_scanned, found
		 FROM scan_runs ORDER BY completed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []ArchivedRun
	for rows.Next() {
		var r ArchivedRun
		var scanType string
		if err := rows.Scan(&r.ID, &scanType, &r.CompletedAt, &r.TotalScanned, &r.Found); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.ScanType = models.ScanType(scanType)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunStocks returns the qualifying stocks of one archived run.
func (a *ScanArchive) RunStocks(ctx context.Context, runID int64) ([]models.StockSummary, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT symbol, name, price, score, found_at
		 FROM scan_run_stocks WHERE run_id = ? ORDER BY score DESC, symbol`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run stocks: %w", err)
	}
	defer rows.Close()

	var stocks []models.StockSummary
	for rows.Next() {
		var s models.StockSummary
		if err := rows.Scan(&s.Symbol, &s.Name, &s.Price, &s.Score, &s.FoundAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

// SymbolAppearances counts how many archived runs a symbol qualified in.
func (a *ScanArchive) SymbolAppearances(ctx context.Context, symbol string) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scan_run_stocks WHERE symbol = ?`, symbol).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count appearances: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (a *ScanArchive) Close() error {
	return a.db.Close()
}
