package medicalfiles

import (
	"encoding/json"
	"net/http"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Handler serves the upload URL endpoint.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a medical files HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("medicalfiles: store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Upload handles POST /api/medical-files/upload: it returns a presigned
// PUT URL and the object path to attach to the booking form.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.store.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false,
			"message": "File uploads are not available",
		})
		return
	}

	uploadURL, objectPath, err := h.store.UploadURL(r.Context())
	if err != nil {
		h.logger.Error("medicalfiles: upload url generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Failed to generate upload URL",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uploadURL":  uploadURL,
		"objectPath": objectPath,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
