// Package odds converts between American odds, decimal odds, and implied
// probability.
//
// Every function here is fail-soft: malformed or out-of-domain input degrades
// to a documented neutral value instead of returning an error. The engine
// feeds a best-effort line-shopping report, and one bad quote must not abort
// the whole run.
package odds

import (
	"log"
	"math"
	"strconv"
	"strings"
)

const (
	// MinProbability and MaxProbability bound every probability the engine
	// produces. Exact 0 and 1 break the odds formulas downstream.
	MinProbability = 0.001
	MaxProbability = 0.999

	// NeutralProbability is substituted for unusable input.
	NeutralProbability = 0.5

	// MinDecimalOdds is the floor applied to decimal odds before EV and
	// Kelly math, just above a stake-only payout.
	MinDecimalOdds = 1.01
)

// ClampProbability forces p into [MinProbability, MaxProbability].
// NaN and ±Inf collapse to NeutralProbability.
func ClampProbability(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		log.Printf("[ODDS] unusable probability %v, substituting %v", p, NeutralProbability)
		return NeutralProbability
	}
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

// ImpliedProbability converts American odds to the win probability the price
// encodes, ignoring vig.
//
// +150 → 100/250 = 0.40
// -110 → 110/210 ≈ 0.5238
func ImpliedProbability(american int) float64 {
	if american == 0 {
		// Zero is not a quotable American price; treat as a coin flip.
		return NeutralProbability
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0)
	}
	a := float64(-american)
	return a / (a + 100.0)
}

// AmericanToDecimal converts American odds to decimal odds. The result is
// always > 1.
//
// +150 → 2.50
// -110 → 1.909
func AmericanToDecimal(american int) float64 {
	if american == 0 {
		return 2.0 // even-money fallback for an unquotable price
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0
	}
	return 100.0/float64(-american) + 1.0
}

// ProbabilityToAmerican converts a win probability to fair American odds.
// Favorites (p > 0.5) get negative odds, underdogs positive. The input is
// clamped rather than rejected; round-tripping through ImpliedProbability
// reproduces the probability within one odds unit.
func ProbabilityToAmerican(prob float64) int {
	p := ClampProbability(prob)
	b := (1 - p) / p
	if p > 0.5 {
		return -int(math.Round(100 / b))
	}
	return int(math.Round(100 * b))
}

// ParseAmerican parses odds written as "+150", "-110", or "150".
func ParseAmerican(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.Atoi(s)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

// ImpliedProbabilityString is ImpliedProbability for odds carried as strings.
// A malformed string degrades to NeutralProbability.
func ImpliedProbabilityString(s string) float64 {
	v, ok := ParseAmerican(s)
	if !ok {
		log.Printf("[ODDS] malformed American odds %q, substituting probability %v", s, NeutralProbability)
		return NeutralProbability
	}
	return ImpliedProbability(v)
}

// FormatAmerican renders odds with the conventional explicit sign.
func FormatAmerican(american int) string {
	if american > 0 {
		return "+" + strconv.Itoa(american)
	}
	return strconv.Itoa(american)
}
