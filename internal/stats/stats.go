package stats

import (
	"math"
	"sort"
)

// HandOutcome is one finished hand from a tracked player's point of view.
// Chip quantities are expressed in big blinds so runs at different stakes
// compare directly.
type HandOutcome struct {
	ProfitBB float64
	PotBB    float64
	Showdown bool // the hand was decided by evaluation, not folds
	Won      bool
}

// Tracker accumulates per-hand outcomes for a single player across a run.
type Tracker struct {
	Hands  int
	sum    float64
	sum2   float64 // sum of squares for variance
	values []float64

	ShowdownWins int
	FoldWins     int
	ShowdownBB   float64
	FoldBB       float64
	MaxPotBB     float64
}

// Add incorporates one hand outcome
func (t *Tracker) Add(o HandOutcome) {
	t.Hands++
	t.sum += o.ProfitBB
	t.sum2 += o.ProfitBB * o.ProfitBB
	t.values = append(t.values, o.ProfitBB)

	if o.Won {
		if o.Showdown {
			t.ShowdownWins++
		} else {
			t.FoldWins++
		}
	}
	if o.Showdown {
		t.ShowdownBB += o.ProfitBB
	} else {
		t.FoldBB += o.ProfitBB
	}
	if o.PotBB > t.MaxPotBB {
		t.MaxPotBB = o.PotBB
	}
}

// Merge folds another tracker's hands into this one
func (t *Tracker) Merge(other *Tracker) {
	t.Hands += other.Hands
	t.sum += other.sum
	t.sum2 += other.sum2
	t.values = append(t.values, other.values...)
	t.ShowdownWins += other.ShowdownWins
	t.FoldWins += other.FoldWins
	t.ShowdownBB += other.ShowdownBB
	t.FoldBB += other.FoldBB
	if other.MaxPotBB > t.MaxPotBB {
		t.MaxPotBB = other.MaxPotBB
	}
}

// Mean returns the mean profit in big blinds per hand
func (t *Tracker) Mean() float64 {
	if t.Hands == 0 {
		return 0
	}
	return t.sum / float64(t.Hands)
}

// Variance returns the sample variance
func (t *Tracker) Variance() float64 {
	if t.Hands < 2 {
		return 0
	}
	mean := t.Mean()
	return (t.sum2 - float64(t.Hands)*mean*mean) / float64(t.Hands-1)
}

// StdDev returns the sample standard deviation
func (t *Tracker) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// StdError returns the standard error of the mean
func (t *Tracker) StdError() float64 {
	if t.Hands == 0 {
		return 0
	}
	return t.StdDev() / math.Sqrt(float64(t.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (t *Tracker) ConfidenceInterval95() (float64, float64) {
	mean := t.Mean()
	margin := 1.96 * t.StdError()
	return mean - margin, mean + margin
}

// Median returns the median profit per hand
func (t *Tracker) Median() float64 {
	if len(t.values) == 0 {
		return 0
	}
	sorted := make([]float64, len(t.values))
	copy(sorted, t.values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the profit at the given percentile (0.0 to 1.0),
// linearly interpolated between samples.
func (t *Tracker) Percentile(p float64) float64 {
	if len(t.values) == 0 {
		return 0
	}
	sorted := make([]float64, len(t.values))
	copy(sorted, t.values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
