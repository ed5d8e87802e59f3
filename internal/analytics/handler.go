package analytics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Store persists and reads events.
type Store interface {
	Track(ctx context.Context, req *TrackRequest, userAgent, referrer string) (*Event, error)
	List(ctx context.Context, limit int) ([]Event, error)
}

// Handler serves the analytics endpoints.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates an analytics HTTP handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("analytics: store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Track handles POST /api/analytics/track. User agent and referrer are
// captured from the request headers.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid event data",
		})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Invalid event data",
		})
		return
	}

	event, err := h.store.Track(r.Context(), &req, r.UserAgent(), r.Referer())
	if err != nil {
		h.logger.Error("analytics: track failed", "error", err, "event_type", req.EventType)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to track event",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      event.ID,
	})
}

// List handles GET /api/analytics, for admin reporting.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List(r.Context(), 0)
	if err != nil {
		h.logger.Error("analytics: list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to fetch analytics",
		})
		return
	}
	if events == nil {
		events = []Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"events":  events,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
