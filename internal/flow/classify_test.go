package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

// go test -v --run TestClassifyExamples
func TestClassifyExamples(t *testing.T) {
	tests := []struct {
		name  string
		typ   OptionType
		price *float64
		iv    *float64
		oi    *float64
		want  Label
	}{
		{"call writers", Call, f(-5), f(-2), f(10), CallWriters},
		{"put writers", Put, f(3), f(-1), f(50), PutWriters},
		{"call buyer branch needs negative oi", Call, f(5), f(3), f(100), Neutral},
		{"call buyers", Call, f(5), f(3), f(-1), CallBuyers},
		{"put buyers", Put, f(-2), f(4), f(-1), PutBuyers},
		{"all absent", Call, nil, nil, nil, Neutral},
		{"absent oi is zero", Call, f(-5), f(-2), nil, Neutral},
		{"absent price is zero", Put, nil, f(-1), f(50), Neutral},
		{"unknown type", OptionType("Straddle"), f(-5), f(-2), f(10), Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.typ, tt.price, tt.iv, tt.oi))
		})
	}
}

// go test -v --run TestClassifyTotal
func TestClassifyTotal(t *testing.T) {
	signs := []float64{-1, 0, 1}
	valid := map[Label]bool{}
	for _, l := range Labels {
		valid[l] = true
	}

	seen := map[Label]int{}
	for _, typ := range []OptionType{Call, Put} {
		for _, p := range signs {
			for _, v := range signs {
				for _, oi := range signs {
					got := Classify(typ, f(p), f(v), f(oi))
					assert.True(t, valid[got], "unexpected label %q", got)
					assert.Equal(t, got, Classify(typ, f(p), f(v), f(oi)), "not deterministic")
					seen[got]++
				}
			}
		}
	}

	// each rule fires for exactly one sign combination
	assert.Equal(t, 1, seen[CallWriters])
	assert.Equal(t, 1, seen[CallBuyers])
	assert.Equal(t, 1, seen[PutWriters])
	assert.Equal(t, 1, seen[PutBuyers])
	assert.Equal(t, 54-4, seen[Neutral])
}

// go test -v --run TestClassifyNonNegativeOpenInterest
func TestClassifyNonNegativeOpenInterest(t *testing.T) {
	for _, typ := range []OptionType{Call, Put} {
		for _, p := range []float64{-3, 0, 3} {
			for _, v := range []float64{-3, 0, 3} {
				for _, oi := range []float64{0, 1, 1000} {
					got := Classify(typ, f(p), f(v), f(oi))
					assert.NotEqual(t, CallBuyers, got)
					assert.NotEqual(t, PutBuyers, got)
				}
			}
		}
	}
}

// go test -v --run TestAnnotate
func TestAnnotate(t *testing.T) {
	i := Instrument{Name: "BTC-23OCT26-70000-P", OptionType: Put, ExpirationTimestamp: refNow.UnixMilli()}
	row := Annotate(i, BookSummary{Last: f(0.01), IV: f(-1), OpenInterest: f(4)})

	assert.Equal(t, PutWriters, row.Label)
	assert.Equal(t, "BTC-23OCT26-70000-P", row.Name)
	assert.Equal(t, "2026-10-16", row.Expiry())
}

// go test -v --run TestParseOptionType
func TestParseOptionType(t *testing.T) {
	c, err := ParseOptionType("call")
	assert.NoError(t, err)
	assert.Equal(t, Call, c)

	p, err := ParseOptionType(" PUT ")
	assert.NoError(t, err)
	assert.Equal(t, Put, p)

	_, err = ParseOptionType("future")
	assert.Error(t, err)
}
