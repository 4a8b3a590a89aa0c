// Package books synthesizes plausible multi-sportsbook quotes around a fair
// probability, simulating line shopping when live odds are unavailable.
package books

import (
	"math"
	"math/rand"

	"github.com/phenomenon0/propvalue/pkg/odds"
)

// defaultOverround is the total implied probability enforced when shading a
// market produces no house edge: a 5% over-round.
const defaultOverround = 1.05

// BookQuote is one synthesized sportsbook's two-way price for a line.
// Quotes are produced per analysis and not retained.
type BookQuote struct {
	Book         string  `json:"book_name"`
	OverOdds     int     `json:"over_odds"`
	UnderOdds    int     `json:"under_odds"`
	Margin       float64 `json:"margin"`
	FairProbUsed float64 `json:"fair_prob_used"`
}

// NoiseFunc returns a per-book probability perturbation simulating market
// movement. nil disables noise; implementations used in tests must be
// deterministic for a fixed seed.
type NoiseFunc func(book string) float64

type bookSpec struct {
	name   string
	margin float64
}

// defaultBooks pairs each simulated book with a preset margin spanning
// roughly 4%-7.5%.
var defaultBooks = []bookSpec{
	{"DraftKings", 0.040},
	{"FanDuel", 0.045},
	{"BetMGM", 0.050},
	{"Caesars", 0.055},
	{"Pinnacle", 0.060},
	{"PointsBet", 0.065},
	{"Barstool", 0.070},
	{"Hard Rock", 0.075},
}

// Synthesizer generates per-book odds from a fair probability. Without a
// noise source it is fully deterministic.
type Synthesizer struct {
	books []bookSpec
	noise NoiseFunc
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithNoise installs a custom perturbation source.
func WithNoise(fn NoiseFunc) Option {
	return func(s *Synthesizer) {
		s.noise = fn
	}
}

// WithSeededNoise installs normally distributed market noise driven by a
// seeded generator, so runs are reproducible. sigma <= 0 uses 0.02 (±2%).
func WithSeededNoise(seed int64, sigma float64) Option {
	if sigma <= 0 {
		sigma = 0.02
	}
	rng := rand.New(rand.NewSource(seed))
	return func(s *Synthesizer) {
		s.noise = func(string) float64 {
			return rng.NormFloat64() * sigma
		}
	}
}

// NewSynthesizer creates a Synthesizer over the default book list.
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{books: defaultBooks}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NumBooks returns the size of the configured book list.
func (s *Synthesizer) NumBooks() int {
	return len(s.books)
}

// GenerateBookOdds converts a fair probability and a margin into a two-way
// American price. Both sides are shaded by roughly half the margin; if the
// shaded probabilities carry no house edge, the pair is rescaled to a 5%
// over-round.
func (s *Synthesizer) GenerateBookOdds(fairProb, margin float64) (overOdds, underOdds int) {
	fair := odds.ClampProbability(fairProb)
	if math.IsNaN(margin) || margin < 0 {
		margin = 0
	}

	over := fair * (1 + margin/2)
	under := (1 - fair) * (1 + margin/2)

	if total := over + under; total <= 1 {
		scale := defaultOverround / total
		over *= scale
		under *= scale
	}

	return odds.ProbabilityToAmerican(over), odds.ProbabilityToAmerican(under)
}

// GenerateMultipleBooks produces quotes from up to numBooks simulated books,
// each with its preset margin. Deterministic given the same fair probability
// unless a noise source is configured.
func (s *Synthesizer) GenerateMultipleBooks(fairProb float64, numBooks int) []BookQuote {
	fair := odds.ClampProbability(fairProb)
	if numBooks < 0 {
		numBooks = 0
	}
	if numBooks > len(s.books) {
		numBooks = len(s.books)
	}

	quotes := make([]BookQuote, 0, numBooks)
	for i := 0; i < numBooks; i++ {
		spec := s.books[i]

		p := fair
		if s.noise != nil {
			// Perturbed probability stays well inside the playable range.
			p = math.Max(0.05, math.Min(0.95, fair+s.noise(spec.name)))
		}

		over, under := s.GenerateBookOdds(p, spec.margin)
		quotes = append(quotes, BookQuote{
			Book:         spec.name,
			OverOdds:     over,
			UnderOdds:    under,
			Margin:       spec.margin,
			FairProbUsed: p,
		})
	}
	return quotes
}
