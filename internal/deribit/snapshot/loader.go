package snapshot

import (
	"context"
	"fmt"

	"optionflow/internal/flow"
	"optionflow/pkg/deribit"

	"go.uber.org/zap"
)

// Client is the subset of deribit.RESTClient the loader needs.
type Client interface {
	GetInstruments(ctx context.Context, currency string, kind deribit.Kind, expired bool) ([]deribit.Instrument, error)
	GetBookSummaryByInstrument(ctx context.Context, instrumentName string) ([]deribit.BookSummary, error)
}

// InstrumentLoader implements flow.MarketData on top of the Deribit REST API.
type InstrumentLoader struct {
	Client Client
	Logger *zap.Logger
}

func NewInstrumentLoader(client Client, logger *zap.Logger) *InstrumentLoader {
	return &InstrumentLoader{Client: client, Logger: logger}
}

// ListInstruments fetches active options for a currency. Entries with an
// unknown option type are kept with an empty OptionType so the pipeline
// reports them.
func (l *InstrumentLoader) ListInstruments(ctx context.Context, currency string) ([]flow.Instrument, error) {
	raw, err := l.Client.GetInstruments(ctx, currency, deribit.KindOption, false)
	if err != nil {
		return nil, err
	}

	out := make([]flow.Instrument, 0, len(raw))
	for _, r := range raw {
		inst, err := ToInstrument(r)
		if err != nil {
			l.Logger.Warn("unrecognized instrument", zap.String("instrument", r.InstrumentName), zap.Error(err))
		}
		out = append(out, inst)
	}
	l.Logger.Info("loaded instruments", zap.String("currency", currency), zap.Int("count", len(out)))
	return out, nil
}

// GetBookSummary fetches one instrument's summary. The exchange returns a
// list; only its first entry is used and an empty list is an empty summary.
func (l *InstrumentLoader) GetBookSummary(ctx context.Context, instrument string) (flow.BookSummary, error) {
	list, err := l.Client.GetBookSummaryByInstrument(ctx, instrument)
	if err != nil {
		return flow.BookSummary{}, err
	}
	if len(list) == 0 {
		l.Logger.Debug("empty book summary", zap.String("instrument", instrument))
		return flow.BookSummary{}, nil
	}
	return ToBookSummary(list[0]), nil
}

// ToInstrument converts the wire instrument into the pipeline type. On an
// unknown option type the instrument is still returned, with OptionType
// left empty, alongside the error.
func ToInstrument(r deribit.Instrument) (flow.Instrument, error) {
	inst := flow.Instrument{
		Name:                r.InstrumentName,
		Currency:            r.BaseCurrency,
		Strike:              r.Strike,
		ExpirationTimestamp: r.ExpirationTimestamp,
	}

	typ, err := flow.ParseOptionType(r.OptionType)
	if err != nil {
		return inst, fmt.Errorf("instrument %s: %w", r.InstrumentName, err)
	}
	inst.OptionType = typ
	return inst, nil
}

// ToBookSummary keeps absent values absent; zero-defaulting happens in flow.Classify.
func ToBookSummary(s deribit.BookSummary) flow.BookSummary {
	return flow.BookSummary{
		Last:         s.Last,
		IV:           s.MarkIV,
		OpenInterest: s.OpenInterest,
	}
}
