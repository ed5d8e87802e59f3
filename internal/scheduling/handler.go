package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Handler serves the slot availability and booking endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a scheduling HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Slots handles GET /api/appointments/slots?date=...
// The date is validated here; the calendar itself assumes a valid value.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "נא לספק תאריך",
		})
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "תאריך לא תקין",
		})
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), date)
	if err != nil {
		h.logger.Error("scheduling: slots fetch failed", "error", err, "date", dateStr)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "אירעה שגיאה בטעינת השעות הפנויות",
		})
		return
	}
	if slots == nil {
		slots = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"slots":   slots,
	})
}

// Create handles POST /api/appointments.
// On conflict the wizard keeps its form state; the 409 is retryable.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "נא למלא את כל השדות הנדרשים",
		})
		return
	}

	appt, err := h.service.CreateAppointment(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotTaken):
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "השעה שנבחרה נתפסה זה עתה. נא לבחור שעה אחרת ולנסות שוב.",
		})
		return
	case errors.Is(err, ErrInvalidSlot):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "השעה שנבחרה אינה זמינה לקביעת תורים",
		})
		return
	case errors.Is(err, ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "נא למלא את כל השדות הנדרשים",
		})
		return
	default:
		h.logger.Error("scheduling: appointment creation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "אירעה שגיאה בקביעת התור. נא לנסות שנית.",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "התור נקבע בהצלחה! נשלח אליך אישור בקרוב.",
		"appointment": appt,
	})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
