package flow

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgNoWeekly     = "No weekly expiring options found."
	msgListFailed   = "Failed to fetch options from the exchange."
	msgNoListing    = "The exchange listed no active options."
	msgAllSummaries = "Book summaries could not be fetched for any expiring option."
)

// MarketData is the exchange collaborator the pipeline reads from.
type MarketData interface {
	// ListInstruments returns all non-expired options for a currency.
	ListInstruments(ctx context.Context, currency string) ([]Instrument, error)
	// GetBookSummary returns the current summary of one instrument. An
	// instrument without a book yields an all-absent summary, not an error.
	GetBookSummary(ctx context.Context, instrument string) (BookSummary, error)
}

// Defaults used by BuildDashboardModel.
const (
	DefaultCurrency    = "BTC"
	DefaultConcurrency = 8
)

// BuildDashboardModel runs the weekly scan for BTC options with default settings.
func BuildDashboardModel(ctx context.Context, src MarketData, now time.Time) Model {
	b := Builder{
		Source:      src,
		Currency:    DefaultCurrency,
		Window:      WeeklyWindow,
		Concurrency: DefaultConcurrency,
	}
	return b.Build(ctx, now)
}

// Builder composes listing, expiry filtering, summary fetches and
// classification into a Model.
type Builder struct {
	Source      MarketData
	Currency    string
	Window      time.Duration
	Concurrency int
	Logger      *zap.Logger
}

// Build produces a fresh Model for the reference instant now. It never
// returns an error; failures are recorded on the Model instead.
func (b *Builder) Build(ctx context.Context, now time.Time) Model {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}
	window := b.Window
	if window <= 0 {
		window = WeeklyWindow
	}

	model := Model{
		GeneratedAt: now,
		Currency:    b.Currency,
		Window:      window,
	}

	instruments, err := b.Source.ListInstruments(ctx, b.Currency)
	if err != nil {
		log.Error("failed to list instruments", zap.String("currency", b.Currency), zap.Error(err))
		model.State = StateNoData
		model.Errors = append(model.Errors, FetchError{Err: err})
		model.Warnings = append(model.Warnings, msgListFailed)
		return model
	}

	if len(instruments) == 0 {
		log.Warn("exchange listed no instruments", zap.String("currency", b.Currency))
		model.State = StateNoData
		model.Warnings = append(model.Warnings, msgNoListing)
		return model
	}

	valid, invalid := ValidateInstruments(instruments)
	model.Errors = append(model.Errors, invalid...)

	expiring := FilterExpiring(valid, now, window)
	log.Info("filtered instruments",
		zap.Int("listed", len(instruments)),
		zap.Int("expiring", len(expiring)),
		zap.Duration("window", window))

	if len(expiring) == 0 {
		model.State = StateEmpty
		model.Warnings = append(model.Warnings, msgNoWeekly)
		return model
	}

	rows, fetchErrs := b.fetchAndClassify(ctx, expiring, log)
	model.Rows = rows
	model.Errors = append(model.Errors, fetchErrs...)

	if len(rows) == 0 {
		model.State = StateEmpty
		model.Warnings = append(model.Warnings, msgAllSummaries)
		return model
	}

	model.State = StateReady
	return model
}

// fetchAndClassify fetches summaries with bounded concurrency. Results are
// slotted by index so the output keeps the filtered order.
func (b *Builder) fetchAndClassify(ctx context.Context, instruments []Instrument, log *zap.Logger) ([]AnnotatedRow, []FetchError) {
	limit := b.Concurrency
	if limit < 1 {
		limit = 1
	}

	type slot struct {
		row AnnotatedRow
		ok  bool
	}
	slots := make([]slot, len(instruments))

	var (
		mu   sync.Mutex
		errs []FetchError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, inst := range instruments {
		g.Go(func() error {
			summary, err := b.Source.GetBookSummary(gctx, inst.Name)
			if err != nil {
				log.Warn("failed to fetch book summary", zap.String("instrument", inst.Name), zap.Error(err))
				mu.Lock()
				errs = append(errs, FetchError{Instrument: inst.Name, Err: err})
				mu.Unlock()
				// one failed instrument must not cancel the others
				return nil
			}
			slots[i] = slot{row: Annotate(inst, summary), ok: true}
			return nil
		})
	}
	_ = g.Wait()

	rows := make([]AnnotatedRow, 0, len(instruments))
	for _, s := range slots {
		if s.ok {
			rows = append(rows, s.row)
		}
	}

	// report failures in filtered order regardless of completion order
	order := make(map[string]int, len(instruments))
	for i, inst := range instruments {
		order[inst.Name] = i
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return order[errs[i].Instrument] < order[errs[j].Instrument]
	})

	return rows, errs
}
