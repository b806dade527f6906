package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"pinbot/core/log"
)

type HealthHandler struct {
	isConnected func() bool
}

func NewHealthHandler(isConnected func() bool) *HealthHandler {
	return &HealthHandler{isConnected: isConnected}
}

func (h *HealthHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.handleHealth).Methods("GET")
}

// handleHealth always answers 200 while the process is up; the gateway state
// is informational since discordgo reconnects on its own.
func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	gateway := "disconnected"
	if h.isConnected() {
		gateway = "connected"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"gateway": gateway,
	}); err != nil {
		log.Error("❌ Failed to write health check response", "error", err)
	}
}
