package trend

import (
	"fjacquet/cycle-spend/internal/models"

	"github.com/montanaflynn/stats"
)

// VolatilityLevel bands the coefficient of variation.
type VolatilityLevel string

const (
	VolatilityHigh         VolatilityLevel = "high"
	VolatilityModerate     VolatilityLevel = "moderate"
	VolatilityLow          VolatilityLevel = "low"
	VolatilityInsufficient VolatilityLevel = "insufficient"
)

// Volatility describes how consistent the cycle totals are. Mean, StdDev
// and CV are zero when Level is VolatilityInsufficient.
type Volatility struct {
	Mean   float64         `json:"mean"`
	StdDev float64         `json:"std_dev"`
	CV     float64         `json:"cv"`
	Level  VolatilityLevel `json:"level"`
}

// Measure computes the sample standard deviation and mean of the cycle
// totals and their ratio in percent. Fewer than two cycles, or a zero mean,
// yield VolatilityInsufficient.
func Measure(totals models.CycleTotals) Volatility {
	keys := totals.Keys()
	if len(keys) < 2 {
		return Volatility{Level: VolatilityInsufficient}
	}

	data := make(stats.Float64Data, 0, len(keys))
	for _, k := range keys {
		data = append(data, totals[k].Total.InexactFloat64())
	}

	mean, err := stats.Mean(data)
	if err != nil || mean == 0 {
		return Volatility{Level: VolatilityInsufficient}
	}
	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil {
		return Volatility{Level: VolatilityInsufficient}
	}

	v := Volatility{
		Mean:   mean,
		StdDev: stdDev,
		CV:     stdDev / mean * 100,
	}
	switch {
	case v.CV > HighVolatilityCV:
		v.Level = VolatilityHigh
	case v.CV > ModerateVolatilityCV:
		v.Level = VolatilityModerate
	default:
		v.Level = VolatilityLow
	}
	return v
}
