// Package server exposes the planning engine over HTTP. Requests carry a
// full snapshot in the body; nothing is persisted between calls.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/snapshot"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/squad"
	"github.com/nawaneetkmr-cyber/fpl-tactix/internal/transfers"
	"github.com/nawaneetkmr-cyber/fpl-tactix/pkg/constants"
)

type handler struct {
	logger        *zap.Logger
	engine        *transfers.Engine
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the planning API.
func NewHandler(logger *zap.Logger, engine *transfers.Engine, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, engine: engine, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Full planning run: exact solve with fallbacks
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Greedy swap candidates only, no solver
	mux.HandleFunc("/api/suggestions", h.handleSuggestions)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type suggestionsResponse struct {
	Suggestions []suggestionView `json:"suggestions"`
	Duration    string           `json:"duration"`
}

type suggestionView struct {
	Out  playerRef `json:"out"`
	In   playerRef `json:"in"`
	Gain float64   `json:"gain"`
}

type playerRef struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Club     string  `json:"club"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	pool, state, ok := h.decodeSnapshot(w, r, "server.handleOptimize")
	if !ok {
		return
	}

	result, err := h.engine.Optimize(r.Context(), pool, state)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleOptimize")
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("plan computed",
		zap.String("op", "server.handleOptimize"),
		zap.String("method", string(result.Method)),
		zap.Int("transfers", len(result.TransfersIn)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	pool, state, ok := h.decodeSnapshot(w, r, "server.handleSuggestions")
	if !ok {
		return
	}

	suggestions, err := h.engine.Suggest(pool, state)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), "server.handleSuggestions")
		return
	}

	views := make([]suggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		views = append(views, suggestionView{
			Out:  refOf(s.Out),
			In:   refOf(s.In),
			Gain: s.Gain,
		})
	}

	elapsed := time.Since(start)
	h.logger.Info("suggestions computed",
		zap.String("op", "server.handleSuggestions"),
		zap.Int("count", len(views)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: views,
		Duration:    elapsed.String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeSnapshot reads the request body as a snapshot document. YAML is
// selected by Content-Type; everything else is treated as JSON.
func (h *handler) decodeSnapshot(w http.ResponseWriter, r *http.Request, op string) (*squad.Pool, *squad.State, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("snapshot exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, nil, false
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to read snapshot: %v", err), op)
		return nil, nil, false
	}

	contentType := r.Header.Get("Content-Type")
	var pool *squad.Pool
	var state *squad.State
	var err error
	if strings.Contains(contentType, "yaml") || strings.Contains(contentType, "yml") {
		pool, state, err = snapshot.ParseYAML(&buf)
	} else {
		pool, state, err = snapshot.ParseJSON(&buf)
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, nil, false
	}
	return pool, state, true
}

func refOf(p *squad.Player) playerRef {
	return playerRef{
		ID:       p.ID,
		Name:     p.Name,
		Club:     p.Club,
		Position: p.Position.String(),
		Price:    p.Price,
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("planning request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
