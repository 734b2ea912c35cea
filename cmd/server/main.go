package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mtgtools/revealsim/internal/catalog"
	"github.com/mtgtools/revealsim/internal/config"
	"github.com/mtgtools/revealsim/internal/deck"
	"github.com/mtgtools/revealsim/internal/sim"
)

type analyzeReq struct {
	Decklist string  `json:"decklist"`
	Trials   int     `json:"trials,omitempty"`
	XMin     int     `json:"x_min,omitempty"`
	XMax     int     `json:"x_max,omitempty"`
	Seed     *uint64 `json:"seed,omitempty"`
}

type analyzeResp struct {
	RunID    string              `json:"run_id"`
	DeckSize int                 `json:"deck_size"`
	Skipped  []string            `json:"skipped,omitempty"`
	Summary  map[int]sim.Summary `json:"summary"`
	Err      string              `json:"err,omitempty"`
}

type cardResp struct {
	Name      string   `json:"name"`
	ManaValue float64  `json:"mana_value"`
	Types     []string `json:"types"`
	Err       string   `json:"err,omitempty"`
}

type server struct {
	cfg     *config.Holder
	catalog catalog.Lookup
	builder *deck.Builder
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleAnalyze builds the deck, runs the Monte Carlo batches, and returns
// the per-reveal-size summaries. Request fields override the configured
// defaults where set.
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req analyzeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResp{Err: "invalid JSON body"})
		return
	}
	if req.Decklist == "" {
		writeJSON(w, http.StatusBadRequest, analyzeResp{Err: "missing decklist"})
		return
	}

	cfg := s.cfg.Current()
	params := sim.Params{XMin: cfg.XMin, XMax: cfg.XMax, Trials: cfg.Trials, Workers: cfg.Workers}
	if req.XMin > 0 {
		params.XMin = req.XMin
	}
	if req.XMax > 0 {
		params.XMax = req.XMax
	}
	if req.Trials > 0 {
		params.Trials = req.Trials
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}

	runID := uuid.NewString()
	d, skipped, err := s.builder.BuildText(r.Context(), req.Decklist)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResp{RunID: runID, Err: err.Error()})
		return
	}
	if len(d) == 0 {
		writeJSON(w, http.StatusBadRequest, analyzeResp{
			RunID:   runID,
			Skipped: skipped,
			Err:     deck.ErrEmptyDeck.Error(),
		})
		return
	}

	start := time.Now()
	results, err := sim.Run(r.Context(), d, params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sim.ErrBadRange) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, analyzeResp{RunID: runID, Err: err.Error()})
		return
	}
	log.Printf("run %s: deck=%d cards, x=%d..%d, trials=%d, took %s",
		runID, len(d), params.XMin, params.XMax, params.Trials, time.Since(start).Round(time.Millisecond))

	writeJSON(w, http.StatusOK, analyzeResp{
		RunID:    runID,
		DeckSize: len(d),
		Skipped:  skipped,
		Summary:  sim.Summarize(results),
	})
}

// handleCard resolves a single card name.
func (s *server) handleCard(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing param name", http.StatusBadRequest)
		return
	}
	c, err := s.catalog.Lookup(r.Context(), name)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, catalog.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, cardResp{Err: err.Error()})
		return
	}
	types := make([]string, 0, c.Types.Count())
	for _, t := range c.Types.Slice() {
		types = append(types, string(t))
	}
	writeJSON(w, http.StatusOK, cardResp{Name: c.Name, ManaValue: c.ManaValue, Types: types})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"trials": strconv.Itoa(s.cfg.Current().Trials),
	})
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	holder, err := config.NewHolder(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	stop := holder.Watch(5 * time.Second)
	defer stop()

	cfg := holder.Current()
	cached := catalog.NewCache(catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout))
	s := &server{
		cfg:     holder,
		catalog: cached,
		builder: deck.NewBuilder(cached),
	}

	http.HandleFunc("/analyze", s.handleAnalyze)
	http.HandleFunc("/card", s.handleCard)
	http.HandleFunc("/healthz", s.handleHealth)

	log.Printf("listening on %s ...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}
