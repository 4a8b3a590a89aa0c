// propd is the prop value analysis daemon. It serves ranked multi-book value
// reports over HTTP and streams them to WebSocket clients.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phenomenon0/propvalue/pkg/analyzer"
	"github.com/phenomenon0/propvalue/pkg/bankroll"
	"github.com/phenomenon0/propvalue/pkg/books"
	"github.com/phenomenon0/propvalue/pkg/markets"
	"github.com/phenomenon0/propvalue/pkg/metrics"
	"github.com/phenomenon0/propvalue/pkg/streaming"
	"github.com/phenomenon0/propvalue/pkg/value"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

var (
	httpAddr   = flag.String("http", ":8090", "HTTP server address")
	numBooks   = flag.Int("books", 6, "Default number of books to synthesize per analysis")
	noiseSeed  = flag.Int64("noise-seed", 0, "Seed for market-noise simulation (0 disables noise)")
	noiseSigma = flag.Float64("noise-sigma", 0.02, "Std dev of per-book market noise")
	bankrollD  = flag.Float64("bankroll", 0, "Session bankroll in dollars (0 disables stake planning)")
	kellyFrac  = flag.Float64("kelly-frac", 0.25, "Fractional Kelly multiplier for stake plans")
	minEdge    = flag.Float64("min-edge", 1.0, "Minimum edge percent to produce a stake plan")
	rps        = flag.Float64("rps", 20, "Analyze requests per second allowed")
	verbose    = flag.Bool("verbose", false, "Verbose logging")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("Starting Prop Value Daemon")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	srv := newServer()

	go srv.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", srv.handleAnalyze)
	mux.HandleFunc("GET /api/health", srv.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(srv.metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /ws", srv.hub.ServeWS)

	httpServer := &http.Server{
		Addr:         *httpAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[HTTP] Listening on %s", *httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[HTTP] Server error: %v", err)
		}
	}()

	<-sigCh
	log.Println("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[HTTP] Shutdown error: %v", err)
	}
}

type server struct {
	analyzer *analyzer.Analyzer
	planner  *bankroll.Planner
	hub      *streaming.Hub
	metrics  *metrics.EngineMetrics
	limiter  *rate.Limiter
}

func newServer() *server {
	var opts []books.Option
	if *noiseSeed != 0 {
		opts = append(opts, books.WithSeededNoise(*noiseSeed, *noiseSigma))
	}
	synth := books.NewSynthesizer(opts...)

	var planner *bankroll.Planner
	if *bankrollD > 0 {
		limits := bankroll.DefaultStakeLimits()
		limits.Bankroll = decimal.NewFromFloat(*bankrollD)
		limits.KellyMultiplier = decimal.NewFromFloat(*kellyFrac)
		limits.MinEdgePercent = *minEdge
		planner = bankroll.NewPlanner(limits)
		log.Printf("[STAKE] Planning enabled: bankroll $%.2f, %.2fx Kelly, min edge %.1f%%",
			*bankrollD, *kellyFrac, *minEdge)
	}

	em := metrics.NewEngineMetrics()
	hub := streaming.NewHub()
	hub.OnClientCount(func(n int) {
		em.ConnectedClients.Set(float64(n))
	})

	return &server{
		analyzer: analyzer.NewAnalyzer(synth),
		planner:  planner,
		hub:      hub,
		metrics:  em,
		limiter:  rate.NewLimiter(rate.Limit(*rps), int(*rps)+1),
	}
}

// analyzeRequest is the POST /api/analyze body.
type analyzeRequest struct {
	Projection value.PlayerProjection `json:"projection"`
	Line       float64                `json:"line"`
	NumBooks   int                    `json:"num_books"`
}

// analyzeResponse wraps a report with its optional stake plan.
type analyzeResponse struct {
	Report    *analyzer.Report    `json:"report"`
	StakePlan *bankroll.StakePlan `json:"stake_plan,omitempty"`
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if _, ok := markets.ParseMarket(string(req.Projection.Market)); !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown market %q", req.Projection.Market))
		return
	}
	if req.NumBooks <= 0 {
		req.NumBooks = *numBooks
	}

	start := time.Now()
	report := s.analyzer.AnalyzeProp(req.Projection, req.Line, req.NumBooks)
	s.recordReport(report, time.Since(start))

	resp := analyzeResponse{Report: report}
	if s.planner != nil && report.Error == "" && report.TopValue != nil {
		plan, err := s.planner.PlanStake(*report.TopValue)
		if err != nil {
			if *verbose {
				log.Printf("[STAKE] No stake for %s: %v", report.Projection.PlayerName, err)
			}
		} else {
			s.planner.RecordStake(plan)
			resp.StakePlan = plan
		}
	}

	s.hub.BroadcastReport(report)

	if *verbose {
		log.Printf("[ANALYZER] %s %s line %.1f: fair over %.3f, %d values",
			report.Projection.PlayerName, report.Projection.Market, report.Line,
			report.FairProbOver, len(report.Values))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *server) recordReport(report *analyzer.Report, dur time.Duration) {
	s.metrics.RecordAnalysis(string(report.Projection.Market), dur.Seconds(), report.Error != "")
	for _, pv := range report.Values {
		s.metrics.RecordValue(pv.Book, pv.SideName, pv.Confidence <= value.DegradedConfidence)
	}
	if report.TopValue != nil {
		s.metrics.RecordTopValue(report.TopValue.EdgePercent, report.TopValue.ExpectedValue, report.TopValue.KellyFraction)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "healthy",
		"service":    "propd",
		"ws_clients": s.hub.ClientCount(),
	})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[HTTP] Encode error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
