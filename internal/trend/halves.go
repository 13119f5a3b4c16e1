package trend

import (
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/models"

	"github.com/shopspring/decimal"
)

// Direction is the outcome of the first versus second half comparison.
type Direction string

const (
	DirectionDecreased        Direction = "decreased"
	DirectionIncreased        Direction = "increased"
	DirectionInsufficientData Direction = "insufficient_data"
)

// HalfSplit compares the average cycle total of the first and second half
// of the period.
type HalfSplit struct {
	First         []cycle.Key     `json:"first_half"`
	Second        []cycle.Key     `json:"second_half"`
	FirstAverage  decimal.Decimal `json:"first_average"`
	SecondAverage decimal.Decimal `json:"second_average"`
	Direction     Direction       `json:"direction"`
	// Percent is the size of the change relative to the first half. It is
	// always non-negative and zero when Direction is insufficient_data.
	Percent decimal.Decimal `json:"percent"`
}

// Halves splits the cycles at n/2 and compares the two averages. With fewer
// than two cycles, or a zero first-half average, the direction is
// DirectionInsufficientData.
func Halves(totals models.CycleTotals) HalfSplit {
	first, second := split(totals.Keys())

	h := HalfSplit{
		First:         first,
		Second:        second,
		FirstAverage:  average(sumTotals(totals, first), len(first)),
		SecondAverage: average(sumTotals(totals, second), len(second)),
		Direction:     DirectionInsufficientData,
	}

	if h.FirstAverage.IsZero() {
		return h
	}

	if h.SecondAverage.LessThan(h.FirstAverage) {
		h.Direction = DirectionDecreased
		h.Percent = h.FirstAverage.Sub(h.SecondAverage).Mul(hundred).Div(h.FirstAverage)
	} else {
		h.Direction = DirectionIncreased
		h.Percent = h.SecondAverage.Sub(h.FirstAverage).Mul(hundred).Div(h.FirstAverage)
	}
	return h
}

func sumTotals(totals models.CycleTotals, keys []cycle.Key) decimal.Decimal {
	sum := decimal.Zero
	for _, k := range keys {
		sum = sum.Add(totals[k].Total)
	}
	return sum
}
