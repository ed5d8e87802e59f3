package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Notifier emails the clinic about a new submission.
type Notifier interface {
	NotifyContactSubmitted(ctx context.Context, sub *Submission) error
}

// Store persists submissions.
type Store interface {
	Create(ctx context.Context, req *SubmitRequest) (*Submission, error)
}

// Handler serves the contact form endpoint.
type Handler struct {
	store    Store
	notifier Notifier
	logger   *logging.Logger
}

// NewHandler creates a contact HTTP handler. notifier may be nil.
func NewHandler(store Store, notifier Notifier, logger *logging.Logger) *Handler {
	if store == nil {
		panic("contact: store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, notifier: notifier, logger: logger}
}

// Submit handles POST /api/contact. The email notification runs in the
// background; a delivery failure never fails the submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "נא למלא את כל השדות הנדרשים",
		})
		return
	}
	if err := req.Validate(); err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "נא למלא את כל השדות הנדרשים",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "אירעה שגיאה. נא לנסות שנית.",
		})
		return
	}

	sub, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("contact: submission store failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "אירעה שגיאה. נא לנסות שנית.",
		})
		return
	}

	if h.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.notifier.NotifyContactSubmitted(ctx, sub); err != nil {
				h.logger.Error("contact: notification failed", "error", err, "submission_id", sub.ID)
			}
		}()
	}

	h.logger.Info("contact: submission received", "submission_id", sub.ID, "subject", sub.Subject)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "פנייתך התקבלה בהצלחה. ניצור איתך קשר בהקדם.",
		"id":      sub.ID,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
