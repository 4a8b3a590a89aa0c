// Package bankroll turns Kelly fractions into capped dollar stake plans and
// tracks session exposure. State is in-memory only; nothing is persisted.
package bankroll

import (
	"fmt"
	"sync"
	"time"

	"github.com/phenomenon0/propvalue/pkg/value"

	"github.com/shopspring/decimal"
)

// StakeLimits defines the staking parameters for a session.
type StakeLimits struct {
	Bankroll        decimal.Decimal // session bankroll in dollars
	KellyMultiplier decimal.Decimal // fractional Kelly, e.g. 0.25 for quarter Kelly
	MaxStakePct     decimal.Decimal // max single stake as fraction of bankroll
	MinEdgePercent  float64         // minimum edge to stake at all
	MaxDailyStake   decimal.Decimal // total staked per day
	MaxPlayerStake  decimal.Decimal // total staked per player per day
}

// DefaultStakeLimits returns conservative defaults: quarter Kelly, 5% max
// stake, 1% minimum edge.
func DefaultStakeLimits() *StakeLimits {
	return &StakeLimits{
		Bankroll:        decimal.NewFromInt(10000),
		KellyMultiplier: decimal.NewFromFloat(0.25),
		MaxStakePct:     decimal.NewFromFloat(0.05),
		MinEdgePercent:  1.0,
		MaxDailyStake:   decimal.NewFromInt(2000),
		MaxPlayerStake:  decimal.NewFromInt(500),
	}
}

// TightStakeLimits returns very conservative limits for testing.
func TightStakeLimits() *StakeLimits {
	return &StakeLimits{
		Bankroll:        decimal.NewFromInt(1000),
		KellyMultiplier: decimal.NewFromFloat(0.1),
		MaxStakePct:     decimal.NewFromFloat(0.02),
		MinEdgePercent:  2.0,
		MaxDailyStake:   decimal.NewFromInt(100),
		MaxPlayerStake:  decimal.NewFromInt(40),
	}
}

// StakePlan is the recommended stake for one PropValue.
type StakePlan struct {
	Player      string          `json:"player"`
	Book        string          `json:"book"`
	Side        string          `json:"side"`
	Line        float64         `json:"line"`
	Odds        int             `json:"odds"`
	FullKelly   decimal.Decimal `json:"full_kelly"`
	Stake       decimal.Decimal `json:"stake"`
	EVPerDollar decimal.Decimal `json:"ev_per_dollar"`
	Capped      bool            `json:"capped"`
}

// Planner sizes stakes against the limits and tracks what has been staked
// today. Safe for concurrent use.
type Planner struct {
	limits *StakeLimits

	mu          sync.Mutex
	dailyStaked decimal.Decimal
	perPlayer   map[string]decimal.Decimal
	day         int // day of year, for daily reset
}

// NewPlanner creates a Planner. nil limits use DefaultStakeLimits.
func NewPlanner(limits *StakeLimits) *Planner {
	if limits == nil {
		limits = DefaultStakeLimits()
	}
	return &Planner{
		limits:    limits,
		perPlayer: make(map[string]decimal.Decimal),
		day:       time.Now().YearDay(),
	}
}

// PlanStake converts a PropValue's Kelly fraction into a dollar stake.
// A nil plan with an error means "do not bet", with the reason.
func (p *Planner) PlanStake(pv value.PropValue) (*StakePlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetDailyIfNeeded()

	if pv.Confidence <= value.DegradedConfidence {
		return nil, fmt.Errorf("degraded valuation for %s, not stakeable", pv.PlayerName)
	}
	if pv.EdgePercent < p.limits.MinEdgePercent {
		return nil, fmt.Errorf("edge %.2f%% below minimum %.2f%%", pv.EdgePercent, p.limits.MinEdgePercent)
	}
	if pv.KellyFraction <= 0 {
		return nil, fmt.Errorf("zero Kelly fraction, no bet")
	}

	fullKelly := p.limits.Bankroll.Mul(decimal.NewFromFloat(pv.KellyFraction))
	stake := fullKelly.Mul(p.limits.KellyMultiplier)

	capped := false
	if maxStake := p.limits.Bankroll.Mul(p.limits.MaxStakePct); stake.GreaterThan(maxStake) {
		stake = maxStake
		capped = true
	}

	if p.dailyStaked.Add(stake).GreaterThan(p.limits.MaxDailyStake) {
		return nil, fmt.Errorf("would exceed daily stake limit $%s", p.limits.MaxDailyStake)
	}
	if exp := p.perPlayer[pv.PlayerName].Add(stake); exp.GreaterThan(p.limits.MaxPlayerStake) {
		return nil, fmt.Errorf("would exceed per-player stake limit $%s for %s", p.limits.MaxPlayerStake, pv.PlayerName)
	}

	return &StakePlan{
		Player:      pv.PlayerName,
		Book:        pv.Book,
		Side:        pv.Side.String(),
		Line:        pv.Line,
		Odds:        pv.AmericanOdds,
		FullKelly:   fullKelly.Round(2),
		Stake:       stake.Round(2),
		EVPerDollar: decimal.NewFromFloat(pv.ExpectedValue).Round(4),
		Capped:      capped,
	}, nil
}

// RecordStake commits a plan against the daily and per-player totals.
func (p *Planner) RecordStake(plan *StakePlan) {
	if plan == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetDailyIfNeeded()
	p.dailyStaked = p.dailyStaked.Add(plan.Stake)
	p.perPlayer[plan.Player] = p.perPlayer[plan.Player].Add(plan.Stake)
}

// DailyStaked returns the total recorded stake for the current day.
func (p *Planner) DailyStaked() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetDailyIfNeeded()
	return p.dailyStaked
}

// ResetDay clears daily tracking.
func (p *Planner) ResetDay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dailyStaked = decimal.Zero
	p.perPlayer = make(map[string]decimal.Decimal)
	p.day = time.Now().YearDay()
}

func (p *Planner) resetDailyIfNeeded() {
	if d := time.Now().YearDay(); d != p.day {
		p.dailyStaked = decimal.Zero
		p.perPlayer = make(map[string]decimal.Decimal)
		p.day = d
	}
}
