package clinic

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// ProfileSource reads the clinic profile.
type ProfileSource interface {
	Get(ctx context.Context) (*Profile, error)
}

// Handler serves GET /api/clinic.
type Handler struct {
	source ProfileSource
	logger *logging.Logger
}

// NewHandler creates a clinic HTTP handler.
func NewHandler(source ProfileSource, logger *logging.Logger) *Handler {
	if source == nil {
		panic("clinic: profile source is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{source: source, logger: logger}
}

// Get returns the clinic's public profile and opening hours.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.source.Get(r.Context())
	if err != nil {
		h.logger.Error("clinic: profile fetch failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "אירעה שגיאה. נא לנסות שנית.",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"clinic":  profile,
	})
}
