// propcheck runs a single prop value analysis from the command line and
// prints the ranked report. Useful for sanity-checking projections without
// running the daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/phenomenon0/propvalue/pkg/analyzer"
	"github.com/phenomenon0/propvalue/pkg/books"
	"github.com/phenomenon0/propvalue/pkg/markets"
	"github.com/phenomenon0/propvalue/pkg/odds"
	"github.com/phenomenon0/propvalue/pkg/value"
)

var (
	player   = flag.String("player", "Ronald Acuna Jr.", "Player name")
	market   = flag.String("market", "H", "Market code (H, K, PTS, ...)")
	mean     = flag.Float64("mean", 1.8, "Projected mean")
	stdDev   = flag.Float64("stddev", 1.2, "Projected standard deviation")
	conf     = flag.Float64("confidence", 0.85, "Model confidence (0-1)")
	samples  = flag.Int("samples", 50, "Sample size behind the projection")
	line     = flag.Float64("line", 1.5, "Betting line")
	numBooks = flag.Int("books", 6, "Number of books to synthesize")
	seed     = flag.Int64("seed", 0, "Market noise seed (0 disables noise)")
)

func main() {
	flag.Parse()

	mt, ok := markets.ParseMarket(*market)
	if !ok {
		log.Fatalf("unknown market %q", *market)
	}

	var opts []books.Option
	if *seed != 0 {
		opts = append(opts, books.WithSeededNoise(*seed, 0.02))
	}

	a := analyzer.NewAnalyzer(books.NewSynthesizer(opts...))

	proj := value.PlayerProjection{
		PlayerID:    markets.ProjectionKey(*player, mt),
		PlayerName:  *player,
		Market:      mt,
		Mean:        *mean,
		StdDev:      *stdDev,
		Confidence:  *conf,
		SampleSize:  *samples,
		LastUpdated: time.Now(),
	}

	report := a.AnalyzeProp(proj, *line, *numBooks)
	if report.Error != "" {
		fmt.Fprintf(os.Stderr, "analysis error: %s\n", report.Error)
		os.Exit(1)
	}

	fmt.Printf("=== %s %s, line %.1f ===\n", proj.PlayerName, proj.Market, report.Line)
	fmt.Printf("Fair probability: over %.1f%%, under %.1f%%\n\n",
		report.FairProbOver*100, report.FairProbUnder*100)

	fmt.Println("Book         Over    Under   Margin")
	for _, q := range report.Books {
		fmt.Printf("%-12s %-7s %-7s %.1f%%\n",
			q.Book, odds.FormatAmerican(q.OverOdds), odds.FormatAmerican(q.UnderOdds), q.Margin*100)
	}

	if top := report.TopValue; top != nil {
		fmt.Printf("\nTop value: %s %s %.1f @ %s (%s)\n",
			top.PlayerName, top.SideName, top.Line, odds.FormatAmerican(top.AmericanOdds), top.Book)
		fmt.Printf("  Edge: %.2f%%  EV: $%.3f/$1  Kelly: %.1f%%\n",
			top.EdgePercent, top.ExpectedValue, top.KellyFraction*100)
	}

	if report.BestOver != nil {
		fmt.Printf("\nBest over:  %s (%s)\n", odds.FormatAmerican(report.BestOver.AmericanOdds), report.BestOver.Book)
	}
	if report.BestUnder != nil {
		fmt.Printf("Best under: %s (%s)\n", odds.FormatAmerican(report.BestUnder.AmericanOdds), report.BestUnder.Book)
	}
}
