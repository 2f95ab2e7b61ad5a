package flow

// Count is one slice of a distribution chart.
type Count struct {
	Name  string
	Value int
}

// OpenInterestSeries returns instrument names and open interest in row order.
// Absent open interest is plotted as zero.
func OpenInterestSeries(rows []AnnotatedRow) (names []string, values []float64) {
	names = make([]string, 0, len(rows))
	values = make([]float64, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
		values = append(values, orZero(r.Summary.OpenInterest))
	}
	return names, values
}

// CountByOptionType counts rows per option type, Call first. Types with no
// rows are omitted.
func CountByOptionType(rows []AnnotatedRow) []Count {
	counts := map[OptionType]int{}
	for _, r := range rows {
		counts[r.OptionType]++
	}

	var out []Count
	for _, t := range []OptionType{Call, Put} {
		if n := counts[t]; n > 0 {
			out = append(out, Count{Name: string(t), Value: n})
		}
	}
	return out
}

// CountByLabel counts rows per label in Labels order. Labels with no rows are
// omitted.
func CountByLabel(rows []AnnotatedRow) []Count {
	counts := map[Label]int{}
	for _, r := range rows {
		counts[r.Label]++
	}

	var out []Count
	for _, l := range Labels {
		if n := counts[l]; n > 0 {
			out = append(out, Count{Name: string(l), Value: n})
		}
	}
	return out
}
