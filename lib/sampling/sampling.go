// Package sampling draws seed-reproducible random samples of labeled
// reviews and aggregates manual correctness judgments into a point
// estimate of tagging accuracy.
package sampling

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// Size is the sample size for a population under a sampling fraction,
// rounded to the nearest whole record.
func Size(population int, fraction float64) int {
	return int(math.Round(float64(population) * fraction))
}

// Draw selects Size(population, fraction) indices from [0, population)
// uniformly at random without replacement. The same seed always yields
// the same draw. Indices come back sorted so adjudication walks the
// dataset in order.
func Draw(population int, fraction float64, seed int64) ([]int, error) {
	if population < 0 {
		return nil, fmt.Errorf("population must be non-negative, got %d", population)
	}
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("sampling fraction must be in [0, 1], got %v", fraction)
	}

	n := Size(population, fraction)
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(population)[:n]

	slices.Sort(indices)
	return indices, nil
}

// Report is a descriptive summary of adjudicated judgments. The
// interval is the 95% normal-approximation (Wald) interval, clamped
// to [0, 1].
type Report struct {
	Sampled    int
	Correct    int
	Proportion float64
	StdErr     float64
	Lo         float64
	Hi         float64
}

func Estimate(correct, sampled int) (Report, error) {
	if sampled <= 0 {
		return Report{}, fmt.Errorf("cannot estimate from %d sampled records", sampled)
	}
	if correct < 0 || correct > sampled {
		return Report{}, fmt.Errorf("correct count %d out of range for sample of %d", correct, sampled)
	}

	p := float64(correct) / float64(sampled)
	se := math.Sqrt(p * (1 - p) / float64(sampled))
	return Report{
		Sampled:    sampled,
		Correct:    correct,
		Proportion: p,
		StdErr:     se,
		Lo:         math.Max(0, p-1.96*se),
		Hi:         math.Min(1, p+1.96*se),
	}, nil
}
