package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{Store: store}
}

// GET /healthz
func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := h.Store.Ping(ctx); err != nil {
		logger.Log.WithError(err).Warn("Health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
