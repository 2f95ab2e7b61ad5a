package flow

import (
	"fmt"
	"strings"
	"time"
)

// OptionType is the right conveyed by an option contract.
type OptionType string

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

// ParseOptionType accepts the exchange spelling ("call", "put") in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return "", fmt.Errorf("unknown option type %q", s)
}

// Instrument is an option contract as listed by the exchange.
type Instrument struct {
	Name                string
	Currency            string
	Strike              float64
	OptionType          OptionType
	ExpirationTimestamp int64 // milliseconds since epoch
}

// Expiration converts the millisecond timestamp to an absolute instant.
func (i Instrument) Expiration() time.Time {
	return time.UnixMilli(i.ExpirationTimestamp).UTC()
}

// BookSummary is the per-instrument market snapshot. A nil field was absent
// or null in the source data; it is only defaulted to zero by Classify.
type BookSummary struct {
	Last         *float64 // last traded price
	IV           *float64 // implied volatility
	OpenInterest *float64
}

// AnnotatedRow joins an instrument, its summary and the derived label.
type AnnotatedRow struct {
	Instrument
	Summary BookSummary
	Label   Label
}

// Expiry is the expiration date formatted YYYY-MM-DD in UTC.
func (r AnnotatedRow) Expiry() string {
	return r.Expiration().Format("2006-01-02")
}

// State summarises how a build ended.
type State string

const (
	StateReady  State = "ready"   // rows available
	StateEmpty  State = "empty"   // nothing to draw, see Warnings
	StateNoData State = "no_data" // listing failed, see Errors
)

// FetchError records a failure tied to one instrument, or to the listing
// itself when Instrument is empty.
type FetchError struct {
	Instrument string
	Err        error
}

func (e FetchError) Error() string {
	if e.Instrument == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Instrument, e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }

// Model is one dashboard snapshot, rebuilt from scratch on every run.
type Model struct {
	GeneratedAt time.Time
	Currency    string
	Window      time.Duration
	State       State
	Rows        []AnnotatedRow
	Warnings    []string
	Errors      []FetchError
}
