package flow

import (
	"errors"
	"time"
)

// WeeklyWindow is the forward expiry window used by the dashboard.
const WeeklyWindow = 7 * 24 * time.Hour

var (
	ErrInvalidExpiration = errors.New("invalid expiration timestamp")
	ErrUnknownOptionType = errors.New("unknown option type")
)

// FilterExpiring returns, in input order, the instruments whose expiration
// lies in [now, now+window]. Both ends are inclusive. Instruments with a
// non-positive timestamp never match; ValidateInstruments reports them.
func FilterExpiring(instruments []Instrument, now time.Time, window time.Duration) []Instrument {
	end := now.Add(window)

	out := make([]Instrument, 0, len(instruments))
	for _, inst := range instruments {
		if inst.ExpirationTimestamp <= 0 {
			continue
		}
		exp := inst.Expiration()
		if exp.Before(now) || exp.After(end) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// ValidateInstruments splits instruments into usable ones and one FetchError
// per instrument with a missing expiration or an option type other than Call
// or Put. Order is preserved.
func ValidateInstruments(instruments []Instrument) ([]Instrument, []FetchError) {
	valid := make([]Instrument, 0, len(instruments))
	var errs []FetchError
	for _, inst := range instruments {
		switch {
		case inst.ExpirationTimestamp <= 0:
			errs = append(errs, FetchError{Instrument: inst.Name, Err: ErrInvalidExpiration})
		case inst.OptionType != Call && inst.OptionType != Put:
			errs = append(errs, FetchError{Instrument: inst.Name, Err: ErrUnknownOptionType})
		default:
			valid = append(valid, inst)
		}
	}
	return valid, errs
}
