package provider

import (
	"context"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/rs/zerolog"

	"trend-screener/internal/errors"
	"trend-screener/internal/models"
	"trend-screener/internal/screener"
	"trend-screener/pkg/utils"
)

// YahooConfig holds Yahoo Finance provider settings.
type YahooConfig struct {
	// ExchangeSuffix is appended to bare symbols, e.g. ".NS" for NSE.
	ExchangeSuffix string
	// TrendLookback is the session offset for the delayed 200-day SMA.
	TrendLookback int
	// Retry bounds the attempts per symbol; failures surface as Timeout or
	// RateLimited rather than hanging the scan.
	Retry utils.RetryConfig
}

// YahooProvider fetches snapshots from Yahoo Finance: a quote for the name
// and a year of daily bars for everything derived.
type YahooProvider struct {
	cfg    YahooConfig
	cache  *SnapshotCache
	logger zerolog.Logger
}

// NewYahooProvider creates a Yahoo Finance provider. cache may be nil to
// disable caching.
func NewYahooProvider(cfg YahooConfig, cache *SnapshotCache, logger zerolog.Logger) *YahooProvider {
	if cfg.TrendLookback <= 0 {
		cfg.TrendLookback = 22
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = utils.DefaultRetryConfig()
	}
	return &YahooProvider{cfg: cfg, cache: cache, logger: logger}
}

// FetchSnapshot implements DataProvider.
func (p *YahooProvider) FetchSnapshot(ctx context.Context, symbol string) (models.PriceSnapshot, error) {
	full := p.fullSymbol(symbol)

	if p.cache != nil {
		if snap, ok := p.cache.Get(full); ok {
			return snap, nil
		}
	}

	snap, err := utils.RetryWithResult(ctx, p.cfg.Retry, func() (models.PriceSnapshot, error) {
		return p.fetch(full)
	})
	if err != nil {
		return models.PriceSnapshot{}, errors.NewProviderError(symbol, classify(ctx, err))
	}

	if p.cache != nil {
		if err := p.cache.Put(full, snap); err != nil {
			p.logger.Warn().Err(err).Str("symbol", full).Msg("snapshot cache write failed")
		}
	}
	return snap, nil
}

func (p *YahooProvider) fetch(symbol string) (models.PriceSnapshot, error) {
	end := time.Now()
	start := end.AddDate(-1, 0, -45) // headroom so the SMA200 lookback window fits

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var closes []float64
	var high52w, low52w float64
	var lastVolume int64
	var volumes []int64
	var lastTS time.Time

	for iter.Next() {
		bar := iter.Bar()
		c, _ := bar.Close.Float64()
		h, _ := bar.High.Float64()
		l, _ := bar.Low.Float64()
		if c == 0 {
			continue
		}
		closes = append(closes, c)
		if high52w == 0 || h > high52w {
			high52w = h
		}
		if low52w == 0 || (l > 0 && l < low52w) {
			low52w = l
		}
		lastVolume = int64(bar.Volume)
		volumes = append(volumes, int64(bar.Volume))
		lastTS = time.Unix(int64(bar.Timestamp), 0)
	}
	if err := iter.Err(); err != nil {
		return models.PriceSnapshot{}, err
	}
	if len(closes) == 0 {
		return models.PriceSnapshot{}, errors.ErrSymbolNotFound
	}

	name := symbol
	if q, err := quote.Get(symbol); err == nil && q != nil && q.ShortName != "" {
		name = q.ShortName
	}

	return models.PriceSnapshot{
		Symbol:         symbol,
		Name:           name,
		Price:          closes[len(closes)-1],
		SMA50:          screener.SMA(closes, 50),
		SMA150:         screener.SMA(closes, 150),
		SMA200:         screener.SMA(closes, 200),
		SMA200Lookback: screener.SMAAgo(closes, 200, p.cfg.TrendLookback),
		High52W:        high52w,
		Low52W:         low52w,
		Volume:         lastVolume,
		AvgVolume20D:   avgTail(volumes, 20),
		Sessions:       len(closes),
		AsOf:           lastTS,
	}, nil
}

func (p *YahooProvider) fullSymbol(symbol string) string {
	if p.cfg.ExchangeSuffix == "" || strings.HasSuffix(symbol, p.cfg.ExchangeSuffix) {
		return symbol
	}
	return symbol + p.cfg.ExchangeSuffix
}

// classify maps transport failures onto the per-symbol error taxonomy.
func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return errors.ErrTimeout
	case errors.Is(err, errors.ErrSymbolNotFound):
		return errors.ErrSymbolNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests"):
		return errors.ErrRateLimited
	case strings.Contains(msg, "not found") || strings.Contains(msg, "no data"):
		return errors.ErrSymbolNotFound
	default:
		return errors.Wrap(errors.ErrTimeout, msg)
	}
}

func avgTail(values []int64, n int) int64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	var sum int64
	for _, v := range values {
		sum += v
	}
	return sum / int64(len(values))
}
