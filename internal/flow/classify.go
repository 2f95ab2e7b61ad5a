package flow

// Label is the implied writer/buyer flow of a row.
type Label string

const (
	CallWriters Label = "Call Writers (IV Falling)"
	CallBuyers  Label = "Call Buyers (IV Rising)"
	PutWriters  Label = "Put Writers (IV Falling)"
	PutBuyers   Label = "Put Buyers (IV Rising)"
	Neutral     Label = "Neutral"
)

// Labels lists every label in display order.
var Labels = []Label{CallWriters, CallBuyers, PutWriters, PutBuyers, Neutral}

// Classify maps an option type and the signs of price, IV and open interest
// to a label. Nil inputs count as zero. Every combination not matched by a
// writer or buyer rule is Neutral.
//
// The buyer rules require negative open interest, which exchanges never
// report, so real data only ever yields writer labels or Neutral.
func Classify(optionType OptionType, price, iv, openInterest *float64) Label {
	p, v, oi := orZero(price), orZero(iv), orZero(openInterest)

	switch optionType {
	case Call:
		if p < 0 && v < 0 && oi > 0 {
			return CallWriters
		}
		if p > 0 && v > 0 && oi < 0 {
			return CallBuyers
		}
	case Put:
		if p > 0 && v < 0 && oi > 0 {
			return PutWriters
		}
		if p < 0 && v > 0 && oi < 0 {
			return PutBuyers
		}
	}
	return Neutral
}

// Annotate classifies one instrument/summary pair.
func Annotate(inst Instrument, summary BookSummary) AnnotatedRow {
	return AnnotatedRow{
		Instrument: inst,
		Summary:    summary,
		Label:      Classify(inst.OptionType, summary.Last, summary.IV, summary.OpenInterest),
	}
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
