package deribit

import "fmt"

// Kind is the instrument kind accepted by public/get_instruments.
type Kind string

const (
	KindFuture      Kind = "future"
	KindOption      Kind = "option"
	KindSpot        Kind = "spot"
	KindFutureCombo Kind = "future_combo"
	KindOptionCombo Kind = "option_combo"
)

const MainnetBaseURL = "https://www.deribit.com/api/v2/public"

const (
	pathGetInstruments             = "/get_instruments"
	pathGetBookSummaryByInstrument = "/get_book_summary_by_instrument"
)

// validKinds lists every kind the API accepts
var validKinds = map[Kind]struct{}{
	KindFuture:      {},
	KindOption:      {},
	KindSpot:        {},
	KindFutureCombo: {},
	KindOptionCombo: {},
}

// IsValid checks if the Kind is one the API accepts
func (k Kind) IsValid() bool {
	_, ok := validKinds[k]
	return ok
}

// ParseKind parses a string into a valid Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid instrument kind: %s", s)
	}
	return k, nil
}
