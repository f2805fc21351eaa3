// Package httpapi serves the normalized transaction feed and edit-form
// prefill data over JSON, for the mobile presentation layer.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/feed"
)

// Handler bundles the services backing the HTTP surface
type Handler struct {
	feed      *feed.Service
	overrides domain.OverrideStore
	log       *logrus.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(feedService *feed.Service, overrides domain.OverrideStore, log *logrus.Logger) *Handler {
	return &Handler{
		feed:      feedService,
		overrides: overrides,
		log:       log,
	}
}

// Routes builds the router. Everything under /api requires the bearer
// token; the health endpoint does not.
func (h *Handler) Routes(apiToken string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiToken))

		r.Get("/api/transactions", h.GetFeed)
		r.Post("/api/transactions/refresh", h.Refresh)
		r.Get("/api/transactions/{id}/edit-form", h.GetEditForm)
		r.Put("/api/transactions/{id}/time-override", h.PutTimeOverride)
		r.Delete("/api/transactions/{id}/time-override", h.DeleteTimeOverride)
	})

	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetFeed returns the latest published snapshot
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	snapshot := h.feed.Current()
	if snapshot == nil {
		http.Error(w, "feed not loaded yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Refresh re-fetches from the upstream ledger and returns the new snapshot
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.feed.Refresh(r.Context())
	if err != nil {
		h.log.Errorf("Refresh failed: %v", err)
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// GetEditForm returns the pre-populated edit screen state for one entry
func (h *Handler) GetEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	form, ok := h.feed.EditForm(id)
	if !ok {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

type timeOverrideRequest struct {
	Timestamp time.Time `json:"timestamp"`
}

// PutTimeOverride records the full timestamp for a locally edited entry and
// folds it into the feed
func (h *Handler) PutTimeOverride(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var req timeOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Timestamp.IsZero() {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.overrides.Put(r.Context(), id, req.Timestamp); err != nil {
		h.log.Errorf("Failed to store time override for entry %d: %v", id, err)
		http.Error(w, "failed to store override", http.StatusInternalServerError)
		return
	}

	h.refreshAfterOverride(r)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTimeOverride removes a locally recorded timestamp
func (h *Handler) DeleteTimeOverride(w http.ResponseWriter, r *http.Request) {
	id, err := entryID(r)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := h.overrides.Remove(r.Context(), id); err != nil {
		h.log.Errorf("Failed to remove time override for entry %d: %v", id, err)
		http.Error(w, "failed to remove override", http.StatusInternalServerError)
		return
	}

	h.refreshAfterOverride(r)
	w.WriteHeader(http.StatusNoContent)
}

// refreshAfterOverride folds an override change into the published feed.
// The override itself is already durable, so a failed refresh only delays
// the change until the next scheduled run.
func (h *Handler) refreshAfterOverride(r *http.Request) {
	if _, err := h.feed.Refresh(r.Context()); err != nil {
		h.log.Warnf("Refresh after override change failed: %v", err)
	}
}

func entryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
