package value

import (
	"log"
	"math"
	"time"

	"github.com/phenomenon0/propvalue/pkg/normal"
	"github.com/phenomenon0/propvalue/pkg/odds"
)

// DegradedConfidence marks a PropValue produced from the safe fallback path
// so consumers can spot it at a glance.
const DegradedConfidence = 0.1

// ExpectedValue returns the expected profit per $1 staked.
//
// EV = p*(d-1) - (1-p), with p clamped into (0,1) and d floored at
// odds.MinDecimalOdds.
func ExpectedValue(modelProb, decimalOdds float64) float64 {
	p := odds.ClampProbability(modelProb)
	d := clampDecimalOdds(decimalOdds)
	return p*(d-1) - (1 - p)
}

// EdgePercent returns the percentage gap between the model's probability and
// the probability implied by the market price.
func EdgePercent(modelProb float64, american int) float64 {
	p := odds.ClampProbability(modelProb)
	implied := odds.ImpliedProbability(american)
	return (p - implied) / implied * 100
}

// KellyFraction returns the Kelly-criterion stake fraction. It never returns
// a negative value; "no bet" is 0.
func KellyFraction(modelProb, decimalOdds float64) float64 {
	p := odds.ClampProbability(modelProb)
	b := clampDecimalOdds(decimalOdds) - 1
	if b <= 0 {
		return 0
	}
	k := (p*(b+1) - 1) / b
	return math.Max(0, k)
}

func clampDecimalOdds(d float64) float64 {
	if math.IsNaN(d) || d < odds.MinDecimalOdds {
		return odds.MinDecimalOdds
	}
	if math.IsInf(d, 1) {
		return odds.MinDecimalOdds
	}
	return d
}

// Calculator composes the probability model and the odds conversions into
// complete PropValue verdicts. It is stateless and safe for concurrent use;
// construct one per call site or share freely.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculatePropValue computes the full value verdict for one side of a line
// at one book's price. It never panics: degenerate input produces a
// well-formed fallback PropValue with a neutral win probability, zero edge,
// and DegradedConfidence.
func (c *Calculator) CalculatePropValue(proj PlayerProjection, line float64, american int, side Side, book string) PropValue {
	if proj.IsDegenerate() || math.IsNaN(line) || math.IsInf(line, 0) {
		log.Printf("[VALUE] degenerate input for %s %s line=%v, returning fallback", proj.playerLabel(), proj.Market, line)
		return c.fallback(proj, line, american, side, book)
	}
	if side != SideOver && side != SideUnder {
		log.Printf("[VALUE] unknown side %d for %s, returning fallback", side, proj.playerLabel())
		return c.fallback(proj, line, american, side, book)
	}

	var modelProb float64
	if side == SideOver {
		modelProb = normal.ProbabilityOver(proj.Mean, proj.StdDev, line)
	} else {
		modelProb = normal.ProbabilityUnder(proj.Mean, proj.StdDev, line)
	}
	modelProb = odds.ClampProbability(modelProb)

	implied := odds.ImpliedProbability(american)
	decimal := odds.AmericanToDecimal(american)

	return PropValue{
		PlayerName:       proj.PlayerName,
		Market:           proj.Market,
		Line:             line,
		Side:             side,
		SideName:         side.String(),
		AmericanOdds:     american,
		DecimalOdds:      decimal,
		WinProbability:   modelProb,
		LoseProbability:  1 - modelProb,
		ImpliedProb:      implied,
		BreakevenWinRate: implied,
		EdgePercent:      EdgePercent(modelProb, american),
		ExpectedValue:    ExpectedValue(modelProb, decimal),
		KellyFraction:    KellyFraction(modelProb, decimal),
		Confidence:       proj.Confidence,
		Book:             book,
		CreatedAt:        time.Now(),
	}
}

// fallback is the safe degraded PropValue: neutral probability, zero edge and
// EV, visibly reduced confidence. Callers always get a well-formed object.
func (c *Calculator) fallback(proj PlayerProjection, line float64, american int, side Side, book string) PropValue {
	return PropValue{
		PlayerName:       proj.PlayerName,
		Market:           proj.Market,
		Line:             line,
		Side:             side,
		SideName:         side.String(),
		AmericanOdds:     american,
		DecimalOdds:      odds.AmericanToDecimal(american),
		WinProbability:   odds.NeutralProbability,
		LoseProbability:  odds.NeutralProbability,
		ImpliedProb:      odds.ImpliedProbability(american),
		BreakevenWinRate: odds.ImpliedProbability(american),
		Confidence:       DegradedConfidence,
		Book:             book,
		CreatedAt:        time.Now(),
	}
}
