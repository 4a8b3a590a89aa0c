package analyzer

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/phenomenon0/propvalue/pkg/books"
	"github.com/phenomenon0/propvalue/pkg/value"
)

func testProjection() value.PlayerProjection {
	return value.PlayerProjection{
		PlayerID:    "mlb_660670",
		PlayerName:  "Ronald Acuna Jr.",
		Market:      value.PlayerHits,
		Mean:        1.8,
		StdDev:      1.2,
		Confidence:  0.85,
		SampleSize:  50,
		LastUpdated: time.Now(),
	}
}

func TestAnalyzePropReportShape(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.AnalyzeProp(testProjection(), 1.5, 6)

	if report == nil {
		t.Fatal("AnalyzeProp returned nil")
	}
	if report.ID == "" {
		t.Error("report missing ID")
	}
	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if len(report.Books) != 6 {
		t.Errorf("got %d books, want 6", len(report.Books))
	}
	if len(report.Values) != 12 {
		t.Errorf("got %d values, want 12 (over+under per book)", len(report.Values))
	}
	if len(report.ValueRanked) != len(report.Values) {
		t.Errorf("ranked list has %d entries, want %d", len(report.ValueRanked), len(report.Values))
	}
	if report.FairProbOver+report.FairProbUnder != 1.0 {
		t.Errorf("fair probs sum to %v, want exactly 1", report.FairProbOver+report.FairProbUnder)
	}
	// Mean 1.8 over line 1.5 favors the over.
	if report.FairProbOver <= 0.5 {
		t.Errorf("FairProbOver = %v, want > 0.5 for mean above line", report.FairProbOver)
	}
}

func TestAnalyzePropBestSides(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.AnalyzeProp(testProjection(), 1.5, 6)

	if report.BestOver == nil || report.BestOver.Side != value.SideOver {
		t.Fatal("BestOver missing or on wrong side")
	}
	if report.BestUnder == nil || report.BestUnder.Side != value.SideUnder {
		t.Fatal("BestUnder missing or on wrong side")
	}
	for _, pv := range report.Values {
		if pv.Side == value.SideOver && pv.ExpectedValue > report.BestOver.ExpectedValue {
			t.Errorf("BestOver EV %v beaten by %s's %v", report.BestOver.ExpectedValue, pv.Book, pv.ExpectedValue)
		}
		if pv.Side == value.SideUnder && pv.ExpectedValue > report.BestUnder.ExpectedValue {
			t.Errorf("BestUnder EV %v beaten by %s's %v", report.BestUnder.ExpectedValue, pv.Book, pv.ExpectedValue)
		}
	}
}

func TestAnalyzePropRankingDescending(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.AnalyzeProp(testProjection(), 1.5, 8)

	if !sort.SliceIsSorted(report.ValueRanked, func(i, j int) bool {
		return report.ValueRanked[i].EdgePercent > report.ValueRanked[j].EdgePercent
	}) {
		t.Error("ValueRanked is not sorted by descending edge percent")
	}
	if report.TopValue == nil {
		t.Fatal("TopValue missing")
	}
	if report.TopValue.EdgePercent != report.ValueRanked[0].EdgePercent {
		t.Error("TopValue does not match head of ranked list")
	}
}

func TestAnalyzePropMalformedProjection(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.AnalyzeProp(value.PlayerProjection{}, 1.5, 6)

	if report.Error == "" {
		t.Error("malformed projection should set Error")
	}
	if len(report.Books) != 0 || len(report.Values) != 0 {
		t.Error("malformed projection should yield empty lists")
	}
	if report.TopValue != nil || report.BestOver != nil || report.BestUnder != nil {
		t.Error("malformed projection should have no best picks")
	}
}

func TestAnalyzePropNeverPanics(t *testing.T) {
	a := NewAnalyzer(books.NewSynthesizer(books.WithSeededNoise(7, 0.02)))
	nan := math.NaN()
	inf := math.Inf(1)

	projections := []value.PlayerProjection{
		{},
		{PlayerName: "x", Market: value.PlayerPoints, Mean: nan, StdDev: nan},
		{PlayerID: "y", Market: value.PlayerStrikeouts, Mean: inf, StdDev: -1},
		{PlayerName: "z", Market: "BOGUS", Mean: 1e308, StdDev: 1e-308},
	}
	for _, proj := range projections {
		for _, line := range []float64{nan, inf, -inf, 0, 1e308} {
			for _, n := range []int{-1, 0, 3, 1000} {
				report := a.AnalyzeProp(proj, line, n)
				if report == nil {
					t.Fatal("AnalyzeProp returned nil")
				}
				if report.Books == nil || report.Values == nil {
					t.Fatal("report slices must be non-nil")
				}
			}
		}
	}
}

func TestAnalyzePropDegenerateNumbersStillReport(t *testing.T) {
	// A projection with NaN numbers but valid identity is not a structural
	// error; it degrades to neutral probabilities instead.
	a := NewAnalyzer(nil)
	proj := testProjection()
	proj.Mean = math.NaN()

	report := a.AnalyzeProp(proj, 1.5, 4)
	if report.Error != "" {
		t.Fatalf("degenerate numbers should not error: %s", report.Error)
	}
	if report.FairProbOver != 0.5 {
		t.Errorf("FairProbOver = %v, want neutral 0.5", report.FairProbOver)
	}
	if len(report.Values) != 8 {
		t.Errorf("got %d values, want 8", len(report.Values))
	}
	for _, pv := range report.Values {
		if pv.Confidence != value.DegradedConfidence {
			t.Errorf("%s %s confidence = %v, want degraded %v", pv.Book, pv.SideName, pv.Confidence, value.DegradedConfidence)
		}
	}
}

func TestBestPointersDoNotAliasValues(t *testing.T) {
	a := NewAnalyzer(nil)
	report := a.AnalyzeProp(testProjection(), 1.5, 4)

	before := report.BestOver.ExpectedValue
	for i := range report.Values {
		report.Values[i].ExpectedValue = -999
	}
	if report.BestOver.ExpectedValue != before {
		t.Error("BestOver aliases the Values slice")
	}
}
