package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegean-group/property-cli/internal/model"
	"github.com/aegean-group/property-cli/internal/scorer"
	"github.com/aegean-group/property-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the enriched catalog and scoring over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		r := buildRouter(s)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func buildRouter(s store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/catalog", func(w http.ResponseWriter, req *http.Request) {
		enriched, err := s.LatestEnriched(req.Context())
		if err != nil {
			zap.L().Error("serve: load enriched snapshot", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "load catalog"})
			return
		}
		if enriched == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no enriched snapshot"})
			return
		}
		writeJSON(w, http.StatusOK, enriched)
	})

	r.Get("/api/snapshots", func(w http.ResponseWriter, req *http.Request) {
		snaps, err := s.ListSnapshots(req.Context(), store.SnapshotFilter{})
		if err != nil {
			zap.L().Error("serve: list snapshots", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list snapshots"})
			return
		}
		writeJSON(w, http.StatusOK, snaps)
	})

	r.Post("/api/score", func(w http.ResponseWriter, req *http.Request) {
		handleScore(w, req, s)
	})

	return r
}

// scoreRequest is the POST /api/score body. Omitted weights fall back to
// the configured defaults; the filter only narrows the response.
type scoreRequest struct {
	Weights map[string]float64   `json:"weights,omitempty"`
	Filter  model.FilterCriteria `json:"filter,omitempty"`
	Limit   int                  `json:"limit,omitempty"`
}

type scoreResponse struct {
	Results []model.ScoredListing `json:"results"`
	TopPick *model.ScoredListing  `json:"top_pick,omitempty"`
	Total   int                   `json:"total"`
	Matched int                   `json:"matched"`
}

func handleScore(w http.ResponseWriter, req *http.Request, s store.Store) {
	var body scoreRequest
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	enriched, err := s.LatestEnriched(req.Context())
	if err != nil {
		zap.L().Error("serve: load enriched snapshot", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "load catalog"})
		return
	}
	if enriched == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no enriched snapshot"})
		return
	}

	weights := weightsFromConfig(cfg.Score)
	for name, v := range body.Weights {
		switch name {
		case scorer.ComponentPrice:
			weights.Price = v
		case scorer.ComponentAirport:
			weights.Airport = v
		case scorer.ComponentBeach:
			weights.Beach = v
		case scorer.ComponentSize:
			weights.Size = v
		case scorer.ComponentYield:
			weights.Yield = v
		case scorer.ComponentRenovation:
			weights.Renovation = v
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown weight " + name})
			return
		}
	}

	sc, err := scorer.New(enriched.Listings, weights)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	scored := sc.ScoreAll(enriched.Listings)
	top := scorer.TopPick(scored)
	results := scorer.Filter(scored, body.Filter)
	scorer.Rank(results)
	matched := len(results)
	if body.Limit > 0 && len(results) > body.Limit {
		results = results[:body.Limit]
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Results: results,
		TopPick: top,
		Total:   len(scored),
		Matched: matched,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
