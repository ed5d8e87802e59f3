package updates

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Lister reads published updates.
type Lister interface {
	List(ctx context.Context, limit int) ([]Update, error)
}

// Handler serves GET /api/updates.
type Handler struct {
	store  Lister
	logger *logging.Logger
}

// NewHandler creates an updates HTTP handler.
func NewHandler(store Lister, logger *logging.Logger) *Handler {
	if store == nil {
		panic("updates: store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// List returns the latest medical updates, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("updates: list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "אירעה שגיאה בטעינת העדכונים",
		})
		return
	}
	if items == nil {
		items = []Update{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"updates": items,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
