package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/deals"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/pricehistory"
)

// batchVerifyLimit caps concurrent oracle calls in a batch verification
// so one request cannot drain the whole rate budget at once.
const batchVerifyLimit = 4

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the web client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gate := oracle.NewGate(cfg)
		svc := deals.NewService(gate, cfg.Deals)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(svc, gate, cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.Bool("ai_available", gate.Available()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(svc *deals.Service, gate *oracle.Gate, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"aiAvailable": gate.Available(),
		})
	})

	r.Route("/api/deals", func(r chi.Router) {
		r.Post("/", handleGenerate(svc))
		r.Post("/verify", handleVerify(svc))
		r.Post("/verify/batch", handleVerifyBatch(svc))
		r.Post("/history", handleHistory())
	})

	return r
}

type generateRequest struct {
	Keywords   string   `json:"keywords"`
	Categories []string `json:"categories"`
	Location   string   `json:"location"`
	Grounded   bool     `json:"grounded"`
}

type generateResponse struct {
	Deals       []model.Deal             `json:"deals"`
	Grounding   *model.GroundingMetadata `json:"groundingMetadata,omitempty"`
	Placeholder bool                     `json:"placeholder"`
}

func handleGenerate(svc *deals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body generateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		prefs := model.UserPreferences{
			Keywords:   body.Keywords,
			Categories: body.Categories,
			Location:   body.Location,
		}

		result, err := svc.GenerateDeals(req.Context(), prefs, body.Grounded)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, generateResponse{
				Deals:     result.Deals,
				Grounding: sanitizeGrounding(result.Grounding),
			})
		case errors.Is(err, oracle.ErrCredentialsMissing):
			writeJSON(w, http.StatusOK, generateResponse{
				Deals:       svc.PlaceholderDeals(),
				Placeholder: true,
			})
		default:
			zap.L().Error("deal generation failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "deal generation failed")
		}
	}
}

func handleVerify(svc *deals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var deal model.Deal
		if err := json.NewDecoder(req.Body).Decode(&deal); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		// Verification is total: degraded outcomes arrive as score-0
		// results, never as HTTP errors.
		writeJSON(w, http.StatusOK, svc.VerifyDeal(req.Context(), deal))
	}
}

type batchVerifyRequest struct {
	Deals []model.Deal `json:"deals"`
}

type batchVerifyResult struct {
	DealID       string                 `json:"dealId"`
	Verification model.DealVerification `json:"verification"`
}

func handleVerifyBatch(svc *deals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body batchVerifyRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(body.Deals) == 0 {
			writeError(w, http.StatusBadRequest, "deals is required")
			return
		}

		results := make([]batchVerifyResult, len(body.Deals))
		g, ctx := errgroup.WithContext(req.Context())
		g.SetLimit(batchVerifyLimit)
		for i, d := range body.Deals {
			g.Go(func() error {
				results[i] = batchVerifyResult{
					DealID:       d.ID,
					Verification: svc.VerifyDeal(ctx, d),
				}
				return nil
			})
		}
		g.Wait()

		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

func handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var deal model.Deal
		if err := json.NewDecoder(req.Body).Decode(&deal); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		writeJSON(w, http.StatusOK, pricehistory.For(deal, time.Now()))
	}
}

// sanitizeGrounding drops citations whose URIs are not plain web links.
// Oracles occasionally emit javascript: or data: URIs in grounding chunks;
// those never reach the client.
func sanitizeGrounding(g *model.GroundingMetadata) *model.GroundingMetadata {
	if g == nil {
		return nil
	}
	out := &model.GroundingMetadata{WebSearchQueries: g.WebSearchQueries}
	for _, c := range g.GroundingChunks {
		src := c.Source()
		if src == nil || !safeURI(src.URI) {
			continue
		}
		out.GroundingChunks = append(out.GroundingChunks, c)
	}
	return out
}

func safeURI(uri string) bool {
	lower := strings.ToLower(strings.TrimSpace(uri))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return true
	}
	// Relative references have no scheme at all.
	return !strings.Contains(lower, ":")
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, req)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		zap.L().Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", w.Header().Get("X-Request-Id")),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
