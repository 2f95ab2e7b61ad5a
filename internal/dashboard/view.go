package dashboard

import (
	"strconv"
	"time"

	"optionflow/internal/flow"
)

// Columns is the table header, shared by the HTML page and the text table.
var Columns = []string{
	"Instrument", "Expiry", "Strike Price", "Option Type",
	"Open Interest", "IV Change", "Price Change", "Writer Type",
}

// RowView is one table row as served to the page and the JSON API.
type RowView struct {
	Instrument   string   `json:"instrument"`
	Expiry       string   `json:"expiry"`
	StrikePrice  float64  `json:"strike_price"`
	OptionType   string   `json:"option_type"`
	OpenInterest *float64 `json:"open_interest"`
	IVChange     *float64 `json:"iv_change"`
	PriceChange  *float64 `json:"price_change"`
	WriterType   string   `json:"writer_type"`
}

// Cells formats the row in Columns order. Absent values render empty.
func (r RowView) Cells() []string {
	return []string{
		r.Instrument,
		r.Expiry,
		formatFloat(&r.StrikePrice),
		r.OptionType,
		formatFloat(r.OpenInterest),
		formatFloat(r.IVChange),
		formatFloat(r.PriceChange),
		r.WriterType,
	}
}

// ModelView is the serialisable form of flow.Model.
type ModelView struct {
	GeneratedAt time.Time `json:"generated_at"`
	Currency    string    `json:"currency"`
	Window      string    `json:"window"`
	State       string    `json:"state"`
	Rows        []RowView `json:"rows"`
	Warnings    []string  `json:"warnings"`
	Errors      []string  `json:"errors"`
}

func NewModelView(m flow.Model) ModelView {
	v := ModelView{
		GeneratedAt: m.GeneratedAt,
		Currency:    m.Currency,
		Window:      m.Window.String(),
		State:       string(m.State),
		Rows:        make([]RowView, 0, len(m.Rows)),
		Warnings:    append([]string{}, m.Warnings...),
		Errors:      make([]string, 0, len(m.Errors)),
	}
	for _, r := range m.Rows {
		v.Rows = append(v.Rows, RowView{
			Instrument:   r.Name,
			Expiry:       r.Expiry(),
			StrikePrice:  r.Strike,
			OptionType:   string(r.OptionType),
			OpenInterest: r.Summary.OpenInterest,
			IVChange:     r.Summary.IV,
			PriceChange:  r.Summary.Last,
			WriterType:   string(r.Label),
		})
	}
	for _, e := range m.Errors {
		v.Errors = append(v.Errors, e.Error())
	}
	return v
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
