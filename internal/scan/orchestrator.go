// Package scan drives chunked, resumable scans across a symbol universe.
//
// The orchestrator walks the universe in fixed-size chunks, persisting a
// checkpoint before each chunk. A crash therefore loses at most one chunk
// of progress, and re-running a chunk is harmless because result appends
// are idempotent per symbol.
package scan

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/notify"
	"trend-screener/internal/provider"
	"trend-screener/internal/screener"
	"trend-screener/internal/store"
)

// Options tune the chunked scan loop.
type Options struct {
	ChunkSize     int
	ChunkInterval time.Duration
	ProgressEvery int
	MinScore      int
}

// DefaultOptions returns the production scan parameters.
func DefaultOptions() Options {
	return Options{
		ChunkSize:     30,
		ChunkInterval: 5 * time.Second,
		ProgressEvery: 5,
		MinScore:      models.NumCriteria,
	}
}

// Commentator adds trade-level commentary to a find notification.
type Commentator interface {
	Commentary(ctx context.Context, r models.CriteriaResult) (string, error)
}

// Deps are the orchestrator's collaborators. Archive, Sink and
// Commentator are optional; a nil Sink disables notifications.
type Deps struct {
	Provider    provider.DataProvider
	Evaluator   *screener.Evaluator
	Checkpoints store.CheckpointStore
	Results     store.ResultStore
	Alerts      *store.AlertGate
	Archive     *store.ScanArchive
	Sink        notify.Sink
	Commentator Commentator
	Logger      zerolog.Logger
}

// Orchestrator runs at most one scan at a time across all scan types.
type Orchestrator struct {
	provider    provider.DataProvider
	evaluator   *screener.Evaluator
	checkpoints store.CheckpointStore
	results     store.ResultStore
	alerts      *store.AlertGate
	archive     *store.ScanArchive
	sink        notify.Sink
	commentator Commentator
	logger      zerolog.Logger
	opts        Options

	running atomic.Bool

	// injected in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator creates an orchestrator. Zero-valued options fall back
// to DefaultOptions.
func NewOrchestrator(deps Deps, opts Options) *Orchestrator {
	def := DefaultOptions()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.ChunkInterval <= 0 {
		opts.ChunkInterval = def.ChunkInterval
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = def.ProgressEvery
	}
	if opts.MinScore <= 0 || opts.MinScore > models.NumCriteria {
		opts.MinScore = def.MinScore
	}

	return &Orchestrator{
		provider:    deps.Provider,
		evaluator:   deps.Evaluator,
		checkpoints: deps.Checkpoints,
		results:     deps.Results,
		alerts:      deps.Alerts,
		archive:     deps.Archive,
		sink:        deps.Sink,
		commentator: deps.Commentator,
		logger:      deps.Logger.With().Str("component", "scan").Logger(),
		opts:        opts,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Run executes a scan synchronously. Only one scan may run at a time;
// a second call returns ErrAlreadyRunning regardless of scan type.
func (o *Orchestrator) Run(ctx context.Context, scanType models.ScanType, symbols []string, recipient string) error {
	if !scanType.Valid() {
		return errors.ErrInvalidScanType
	}
	if !o.running.CompareAndSwap(false, true) {
		return errors.ErrAlreadyRunning
	}
	defer o.running.Store(false)

	return o.run(ctx, scanType, symbols, recipient)
}

// Start launches a scan in the background. The single-flight check
// happens synchronously so callers get ErrAlreadyRunning immediately.
func (o *Orchestrator) Start(ctx context.Context, scanType models.ScanType, symbols []string, recipient string) error {
	if !scanType.Valid() {
		return errors.ErrInvalidScanType
	}
	if !o.running.CompareAndSwap(false, true) {
		return errors.ErrAlreadyRunning
	}

	go func() {
		defer o.running.Store(false)
		if err := o.run(ctx, scanType, symbols, recipient); err != nil {
			o.logger.Error().Err(err).Str("scan_type", string(scanType)).Msg("background scan failed")
		}
	}()
	return nil
}

// Stop requests a cooperative pause. The running scan observes the flag
// at the next chunk boundary; in-flight symbols finish first.
func (o *Orchestrator) Stop() error {
	cp, err := o.checkpoints.Load()
	if err != nil {
		return err
	}
	if cp == nil {
		return errors.ErrNoCheckpoint
	}
	cp.Stopped = true
	return o.checkpoints.Save(*cp)
}

// Resume continues a paused scan of the given type from its checkpoint,
// blocking until it finishes or pauses again.
func (o *Orchestrator) Resume(ctx context.Context, scanType models.ScanType, symbols []string) error {
	cp, err := o.checkpoints.Load()
	if err != nil {
		return err
	}
	if cp == nil {
		return errors.ErrNoCheckpoint
	}
	if cp.ScanType != scanType {
		return errors.ErrScanTypeMismatch
	}

	cp.Stopped = false
	if err := o.checkpoints.Save(*cp); err != nil {
		return err
	}
	return o.Run(ctx, scanType, symbols, cp.Recipient)
}

// Progress reports the externally visible scan state from the persisted
// checkpoint and result set.
func (o *Orchestrator) Progress() (models.ScanProgress, error) {
	cp, err := o.checkpoints.Load()
	if err != nil {
		return models.ScanProgress{}, err
	}
	set, err := o.results.List()
	if err != nil {
		return models.ScanProgress{}, err
	}

	p := models.ScanProgress{Found: len(set.Stocks)}
	switch {
	case o.running.Load():
		p.Status = models.StatusRunning
	case cp != nil:
		p.Status = models.StatusPaused
	case set.CompletedAt != nil:
		p.Status = models.StatusCompleted
	default:
		p.Status = models.StatusIdle
	}

	if cp != nil {
		p.ScanType = cp.ScanType
		p.Offset = cp.Offset
		p.Total = cp.Total
	} else {
		p.ScanType = set.ScanType
		p.Offset = set.TotalScanned
		p.Total = set.TotalScanned
	}
	return p, nil
}

// Results returns the current result set.
func (o *Orchestrator) Results() (models.ScanResultSet, error) {
	return o.results.List()
}

// Running reports whether a scan is active.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

func (o *Orchestrator) run(ctx context.Context, scanType models.ScanType, symbols []string, recipient string) error {
	logger := o.logger.With().Str("scan_type", string(scanType)).Logger()

	total := len(symbols)
	offset := 0
	startedAt := o.now()
	found := 0

	cp, err := o.checkpoints.Load()
	if err != nil {
		return err
	}
	if cp != nil && cp.ScanType == scanType && cp.Offset < total {
		offset = cp.Offset
		if !cp.StartedAt.IsZero() {
			startedAt = cp.StartedAt
		}
		if recipient == "" {
			recipient = cp.Recipient
		}
		if set, lerr := o.results.List(); lerr == nil && set.ScanType == scanType {
			found = len(set.Stocks)
		}
		logger.Info().Int("offset", offset).Int("total", total).Msg("resuming scan from checkpoint")
	} else {
		if err := o.results.Reset(scanType); err != nil {
			return err
		}
		logger.Info().Int("total", total).Msg("starting scan")
		o.send(ctx, recipient, notify.FormatScanStarted(scanType, total, o.opts.ChunkSize))
	}

	chunks := 0
	for offset < total {
		cp := models.ScanCheckpoint{
			ScanType:  scanType,
			Offset:    offset,
			Total:     total,
			StartedAt: startedAt,
			Recipient: recipient,
		}
		if err := o.checkpoints.Save(cp); err != nil {
			return err
		}

		end := offset + o.opts.ChunkSize
		if end > total {
			end = total
		}

		for _, symbol := range symbols[offset:end] {
			res, ok := o.scanSymbol(ctx, logger, symbol)
			if !ok || res.Score < o.opts.MinScore {
				continue
			}
			if err := o.results.Append(screener.Summarize(res, o.now()), scanType); err != nil {
				return err
			}
			found++
			o.notifyFind(ctx, recipient, res, end, total)
		}
		offset = end
		chunks++

		stopped, err := o.stopRequested()
		if err != nil {
			return err
		}
		// A stop observed at the final boundary has nothing left to
		// pause; the scan completes instead.
		if (stopped || ctx.Err() != nil) && offset < total {
			cp.Offset = offset
			cp.Stopped = true
			if err := o.checkpoints.Save(cp); err != nil {
				return err
			}
			logger.Info().Int("offset", offset).Int("found", found).Msg("scan paused")
			o.send(context.Background(), recipient, notify.FormatStopped(offset, total, found))
			return ctx.Err()
		}

		if offset < total {
			if chunks%o.opts.ProgressEvery == 0 {
				o.send(ctx, recipient, notify.FormatProgress(offset, total, found))
			}
			if err := o.sleep(ctx, o.opts.ChunkInterval); err != nil {
				cp.Offset = offset
				cp.Stopped = true
				if serr := o.checkpoints.Save(cp); serr != nil {
					return serr
				}
				logger.Info().Int("offset", offset).Msg("scan canceled during pause interval")
				return err
			}
		}
	}

	if err := o.results.Complete(total); err != nil {
		return err
	}
	if err := o.checkpoints.Clear(); err != nil {
		return err
	}
	o.archiveRun(ctx, logger)

	logger.Info().Int("found", found).Int("total", total).Msg("scan complete")
	o.send(ctx, recipient, notify.FormatCompleted(scanType, total, found))
	return nil
}

// scanSymbol fetches and evaluates one symbol. Per-symbol failures are
// logged and skipped so a single bad symbol never aborts the scan.
func (o *Orchestrator) scanSymbol(ctx context.Context, logger zerolog.Logger, symbol string) (models.CriteriaResult, bool) {
	snap, err := o.provider.FetchSnapshot(ctx, symbol)
	if err != nil {
		if errors.Recoverable(err) {
			logger.Debug().Err(err).Str("symbol", symbol).Msg("skipping symbol")
		} else {
			logger.Warn().Err(err).Str("symbol", symbol).Msg("skipping symbol")
		}
		return models.CriteriaResult{}, false
	}

	res, err := o.evaluator.Evaluate(snap)
	if err != nil {
		logger.Debug().Err(err).Str("symbol", symbol).Msg("skipping symbol")
		return models.CriteriaResult{}, false
	}
	return res, true
}

// notifyFind emits a per-find notification, gated by the alert cooldown.
// The result set already holds the stock either way.
func (o *Orchestrator) notifyFind(ctx context.Context, recipient string, r models.CriteriaResult, scanned, total int) {
	if o.sink == nil {
		return
	}
	if o.alerts != nil && !o.alerts.ShouldAlert(r.Symbol) {
		o.logger.Debug().Str("symbol", r.Symbol).Msg("alert suppressed by cooldown")
		return
	}

	text := notify.FormatFound(r, scanned, total)
	if o.commentator != nil {
		if commentary, err := o.commentator.Commentary(ctx, r); err != nil {
			o.logger.Debug().Err(err).Str("symbol", r.Symbol).Msg("commentary unavailable")
		} else if commentary != "" {
			text += "\n\n" + commentary
		}
	}
	o.send(ctx, recipient, text)

	if o.alerts != nil {
		details := map[string]interface{}{
			"price": r.Price,
			"score": r.Score,
		}
		if err := o.alerts.RecordAlert(r.Symbol, details); err != nil {
			o.logger.Warn().Err(err).Str("symbol", r.Symbol).Msg("recording alert failed")
		}
	}
}

func (o *Orchestrator) stopRequested() (bool, error) {
	cp, err := o.checkpoints.Load()
	if err != nil {
		return false, err
	}
	return cp != nil && cp.Stopped, nil
}

// archiveRun copies the completed result set into the history archive.
// Archive failures are logged, never fatal.
func (o *Orchestrator) archiveRun(ctx context.Context, logger zerolog.Logger) {
	if o.archive == nil {
		return
	}
	set, err := o.results.List()
	if err != nil {
		logger.Warn().Err(err).Msg("loading results for archive failed")
		return
	}
	if _, err := o.archive.SaveRun(ctx, set); err != nil {
		logger.Warn().Err(err).Msg("archiving scan run failed")
	}
}

func (o *Orchestrator) send(ctx context.Context, recipient, text string) {
	if o.sink == nil {
		return
	}
	if err := o.sink.Send(ctx, recipient, text); err != nil {
		o.logger.Warn().Err(err).Msg("notification delivery failed")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
