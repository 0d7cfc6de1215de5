package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ayethu/autoparts-backend/internal/gate"
)

// GateHandler handles HTTP requests for the shop session gate
type GateHandler struct {
	gate *gate.Gate
}

// NewGateHandler creates a new gate handler
func NewGateHandler(g *gate.Gate) *GateHandler {
	return &GateHandler{gate: g}
}

// Unlock handles POST /gate/unlock
func (h *GateHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.gate.Unlock(req.Password)
	if err != nil {
		if errors.Is(err, gate.ErrWrongPassword) {
			respondError(w, http.StatusUnauthorized, "Wrong password")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// RegisterRoutes registers the gate routes
func (h *GateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/gate/unlock", h.Unlock).Methods("POST")
}
