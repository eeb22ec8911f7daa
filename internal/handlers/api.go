package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/opsverdict/opsverdict/internal/domain"
	"github.com/opsverdict/opsverdict/internal/services"
)

// APIHandler is the thin REST façade over the lifecycle orchestrator.
// It translates requests into the lifecycle operations and renders the
// structured results as JSON; no domain logic lives here.
type APIHandler struct {
	lifecycle *services.LifecycleService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(lifecycle *services.LifecycleService) *APIHandler {
	return &APIHandler{lifecycle: lifecycle}
}

// SetupRoutes sets up all API routes.
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/incidents", h.handleListIncidents)
	mux.HandleFunc("POST /api/incidents", h.handleTrigger)
	mux.HandleFunc("GET /api/incidents/{id}", h.handleGetIncident)
	mux.HandleFunc("GET /api/incidents/{id}/timeline", h.handleGetTimeline)
	mux.HandleFunc("GET /api/incidents/{id}/history", h.handleGetHistory)

	mux.HandleFunc("GET /api/session", h.handleSessionStatus)
	mux.HandleFunc("POST /api/session/attach", h.handleAttach)
	mux.HandleFunc("POST /api/session/detach", h.handleDetach)
	mux.HandleFunc("POST /api/session/ask", h.handleAsk)
	mux.HandleFunc("POST /api/session/resolve", h.handleResolve)
}

func (h *APIHandler) handleListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.lifecycle.List()
	if err != nil {
		http.Error(w, "Failed to list incidents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, incidents)
}

func (h *APIHandler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	// The body is optional; an empty title falls back to the default.
	_ = json.NewDecoder(r.Body).Decode(&req)

	result := h.lifecycle.Trigger(r.Context(), req.Title)
	writeResult(w, result.Success, result)
}

func (h *APIHandler) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	incident, summary, err := h.lifecycle.Get(id)
	if err != nil {
		http.Error(w, "Failed to load incident: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if incident == nil {
		http.Error(w, domain.ErrNotFound.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"incident": incident,
		"summary":  summary,
	})
}

func (h *APIHandler) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	events, err := h.lifecycle.Timeline(id)
	if err != nil {
		http.Error(w, "Failed to load timeline: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *APIHandler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.lifecycle.History(id)
	if err != nil {
		http.Error(w, "Failed to load history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *APIHandler) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	result := h.lifecycle.Status()
	writeResult(w, result.Success, result)
}

func (h *APIHandler) handleAttach(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IncidentID int `json:"incident_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := h.lifecycle.Attach(req.IncidentID)
	writeResult(w, result.Success, result)
}

func (h *APIHandler) handleDetach(w http.ResponseWriter, r *http.Request) {
	result := h.lifecycle.Detach()
	writeResult(w, result.Success, result)
}

func (h *APIHandler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	result := h.lifecycle.Ask(r.Context(), req.Question)
	// Policy rejections and reasoning failures are structured results,
	// not HTTP errors.
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) handleResolve(w http.ResponseWriter, r *http.Request) {
	result := h.lifecycle.Resolve(r.Context())
	writeResult(w, result.Success, result)
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		http.Error(w, "Invalid incident id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeResult renders a structured result, mapping failures to 422 so
// clients can distinguish them from transport errors.
func writeResult(w http.ResponseWriter, success bool, payload any) {
	status := http.StatusOK
	if !success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
