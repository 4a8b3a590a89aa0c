// Package analyzer orchestrates the value engine into a ranked, multi-book
// report for one player-prop line.
package analyzer

import (
	"log"
	"sort"
	"time"

	"github.com/phenomenon0/propvalue/pkg/books"
	"github.com/phenomenon0/propvalue/pkg/normal"
	"github.com/phenomenon0/propvalue/pkg/value"

	"github.com/google/uuid"
)

// Report is the complete value analysis for one player-prop line. It is
// plain structured data; serialization and persistence belong to callers.
type Report struct {
	ID         string                 `json:"id"`
	Projection value.PlayerProjection `json:"projection"`
	Line       float64                `json:"line"`

	FairProbOver  float64 `json:"fair_prob_over"`
	FairProbUnder float64 `json:"fair_prob_under"`

	Books  []books.BookQuote `json:"all_books"`
	Values []value.PropValue `json:"all_values"`

	BestOver    *value.PropValue  `json:"best_over,omitempty"`
	BestUnder   *value.PropValue  `json:"best_under,omitempty"`
	ValueRanked []value.PropValue `json:"value_ranked"`
	TopValue    *value.PropValue  `json:"top_value,omitempty"`

	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Analyzer produces Reports. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	calc  *value.Calculator
	synth *books.Synthesizer
}

// NewAnalyzer creates an Analyzer. A nil synthesizer uses the default
// deterministic book list.
func NewAnalyzer(synth *books.Synthesizer) *Analyzer {
	if synth == nil {
		synth = books.NewSynthesizer()
	}
	return &Analyzer{
		calc:  value.NewCalculator(),
		synth: synth,
	}
}

// AnalyzeProp produces the ranked value report for one projection and line.
//
// It never panics and never returns nil: a malformed projection yields a
// report with empty slices and Error set, and per-book degeneracy is already
// absorbed by the calculator's fallback contract.
func (a *Analyzer) AnalyzeProp(proj value.PlayerProjection, line float64, numBooks int) (report *Report) {
	report = &Report{
		ID:         uuid.New().String(),
		Projection: proj,
		Line:       line,
		Books:      []books.BookQuote{},
		Values:     []value.PropValue{},
		Timestamp:  time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANALYZER] recovered from panic analyzing %s %s: %v", proj.PlayerName, proj.Market, r)
			report.Error = "internal analysis failure"
			report.Books = []books.BookQuote{}
			report.Values = []value.PropValue{}
			report.ValueRanked = nil
			report.BestOver, report.BestUnder, report.TopValue = nil, nil, nil
		}
	}()

	if err := proj.Validate(); err != nil {
		report.Error = err.Error()
		return report
	}

	fairOver := normal.ProbabilityOver(proj.Mean, proj.StdDev, line)
	report.FairProbOver = fairOver
	report.FairProbUnder = 1 - fairOver

	report.Books = a.synth.GenerateMultipleBooks(fairOver, numBooks)

	for _, quote := range report.Books {
		over := a.calc.CalculatePropValue(proj, line, quote.OverOdds, value.SideOver, quote.Book)
		under := a.calc.CalculatePropValue(proj, line, quote.UnderOdds, value.SideUnder, quote.Book)
		report.Values = append(report.Values, over, under)
	}

	report.BestOver = bestByEV(report.Values, value.SideOver)
	report.BestUnder = bestByEV(report.Values, value.SideUnder)

	report.ValueRanked = make([]value.PropValue, len(report.Values))
	copy(report.ValueRanked, report.Values)
	sort.SliceStable(report.ValueRanked, func(i, j int) bool {
		return report.ValueRanked[i].EdgePercent > report.ValueRanked[j].EdgePercent
	})
	if len(report.ValueRanked) > 0 {
		report.TopValue = &report.ValueRanked[0]
	}

	return report
}

// bestByEV returns a pointer to the highest-EV PropValue on the given side,
// or nil if none exist.
func bestByEV(values []value.PropValue, side value.Side) *value.PropValue {
	var best *value.PropValue
	for i := range values {
		if values[i].Side != side {
			continue
		}
		if best == nil || values[i].ExpectedValue > best.ExpectedValue {
			best = &values[i]
		}
	}
	if best == nil {
		return nil
	}
	// Copy so the report's best pointers do not alias the Values slice.
	b := *best
	return &b
}
