// Package normal derives over/under probabilities for a betting line from a
// (mean, standard deviation) projection using the standard normal
// distribution.
package normal

import (
	"log"
	"math"

	"github.com/phenomenon0/propvalue/pkg/odds"
)

// maxZ bounds the z-score before CDF evaluation. Beyond ±8 the standard
// normal CDF is 0 or 1 to double precision.
const maxZ = 8.0

// CDF evaluates the standard normal cumulative distribution function.
func CDF(z float64) float64 {
	if z > maxZ {
		return 1
	}
	if z < -maxZ {
		return 0
	}
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// ProbabilityOver returns the probability that a normally distributed outcome
// with the given mean and standard deviation exceeds line.
//
// The result always lies inside [odds.MinProbability, odds.MaxProbability].
// A deterministic projection (stdDev <= 0) clamps to the boundary instead of
// returning an exact 0 or 1, and non-finite input degrades to the neutral
// 0.5. Unclamped probabilities leaking into odds formulas took down the
// valuation pipeline before; the clamps are load-bearing.
func ProbabilityOver(mean, stdDev, line float64) float64 {
	if !finite(mean) || !finite(stdDev) || !finite(line) {
		log.Printf("[NORMAL] non-finite projection: mean=%v stdDev=%v line=%v, substituting %v",
			mean, stdDev, line, odds.NeutralProbability)
		return odds.NeutralProbability
	}

	if stdDev <= 0 {
		// Deterministic outcome.
		if mean > line {
			return odds.MaxProbability
		}
		return odds.MinProbability
	}

	z := (line - mean) / stdDev
	if z > maxZ {
		return odds.MinProbability
	}
	if z < -maxZ {
		return odds.MaxProbability
	}

	return odds.ClampProbability(1 - CDF(z))
}

// ProbabilityUnder is the exact complement of ProbabilityOver: the two always
// sum to 1 for the same inputs.
func ProbabilityUnder(mean, stdDev, line float64) float64 {
	return 1 - ProbabilityOver(mean, stdDev, line)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
