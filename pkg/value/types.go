// Package value computes the bettor's edge for player-prop lines: expected
// value, edge percentage, and Kelly stake fraction from a statistical
// projection and a market price.
package value

import (
	"fmt"
	"math"
	"time"
)

// MarketType identifies a prop betting market. The set is closed per sport.
type MarketType string

const (
	PlayerPoints      MarketType = "PTS"
	PlayerRebounds    MarketType = "REB"
	PlayerAssists     MarketType = "AST"
	PlayerHits        MarketType = "H"
	PlayerRuns        MarketType = "R"
	PlayerRBI         MarketType = "RBI"
	PlayerHomeRuns    MarketType = "HR"
	PlayerStolenBases MarketType = "SB"
	PlayerStrikeouts  MarketType = "K"
	PlayerWalks       MarketType = "BB"
	PlayerTotalBases  MarketType = "TB"
	PlayerHitsRunsRBI MarketType = "H+R+RBI"
)

// Side is the side of an over/under line.
type Side int

const (
	SideOver Side = iota
	SideUnder
)

func (s Side) String() string {
	if s == SideOver {
		return "OVER"
	}
	return "UNDER"
}

// ParseSide parses "OVER"/"UNDER" (case-insensitive via exact upper forms).
func ParseSide(s string) (Side, bool) {
	switch s {
	case "OVER", "over", "Over":
		return SideOver, true
	case "UNDER", "under", "Under":
		return SideUnder, true
	}
	return SideOver, false
}

// PlayerProjection is a statistical forecast for one player/stat combination.
// It is produced by an external forecasting component and never mutated here.
type PlayerProjection struct {
	PlayerID    string     `json:"player_id"`
	PlayerName  string     `json:"player_name"`
	Market      MarketType `json:"market"`
	Mean        float64    `json:"mean"`
	StdDev      float64    `json:"std_dev"`
	Confidence  float64    `json:"confidence"`  // model's self-reported reliability, 0-1
	SampleSize  int        `json:"sample_size"` // informational
	LastUpdated time.Time  `json:"last_updated"`
}

// Validate reports structurally missing fields. Numeric degeneracy (NaN, Inf)
// is not an error here; the probability layer degrades those to neutral
// values on its own.
func (p *PlayerProjection) Validate() error {
	if p.PlayerID == "" && p.PlayerName == "" {
		return fmt.Errorf("projection missing player identity")
	}
	if p.Market == "" {
		return fmt.Errorf("projection for %s missing market", p.playerLabel())
	}
	return nil
}

func (p *PlayerProjection) playerLabel() string {
	if p.PlayerName != "" {
		return p.PlayerName
	}
	return p.PlayerID
}

// IsDegenerate reports whether the projection's numbers cannot support a real
// probability estimate.
func (p *PlayerProjection) IsDegenerate() bool {
	return math.IsNaN(p.Mean) || math.IsInf(p.Mean, 0) ||
		math.IsNaN(p.StdDev) || math.IsInf(p.StdDev, 0)
}

// PropValue is the value verdict for one (player, market, line, side, book)
// combination. Instances are created fresh per calculation and never mutated.
type PropValue struct {
	PlayerName string     `json:"player_name"`
	Market     MarketType `json:"market"`
	Line       float64    `json:"line"`
	Side       Side       `json:"-"`
	SideName   string     `json:"side"`

	AmericanOdds int     `json:"american_odds"`
	DecimalOdds  float64 `json:"decimal_odds"`

	WinProbability   float64 `json:"win_probability"`
	LoseProbability  float64 `json:"lose_probability"`
	ImpliedProb      float64 `json:"implied_prob"`
	BreakevenWinRate float64 `json:"breakeven_win_rate"`

	EdgePercent   float64 `json:"edge_percent"`
	ExpectedValue float64 `json:"expected_value"` // EV per $1 staked
	KellyFraction float64 `json:"kelly_fraction"`

	Confidence float64   `json:"confidence"`
	Book       string    `json:"book_name"`
	CreatedAt  time.Time `json:"created_at"`
}
