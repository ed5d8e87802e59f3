package triage

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/bramliclinic/clinic-platform/internal/observability/metrics"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

var tracer = otel.Tracer("clinic.internal.triage")

// Handler serves the triage chat endpoint.
type Handler struct {
	logger  *logging.Logger
	metrics *metrics.TriageMetrics
}

// NewHandler creates a triage HTTP handler.
func NewHandler(logger *logging.Logger, m *metrics.TriageMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger, metrics: m}
}

type chatRequest struct {
	Message string `json:"message"`
	Context []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"context,omitempty"`
}

type chatResponse struct {
	Success              bool         `json:"success"`
	Response             string       `json:"response"`
	Type                 UrgencyLevel `json:"type"`
	Category             string       `json:"category"`
	UrgencyLabel         string       `json:"urgencyLabel"`
	FollowUp             []string     `json:"followUp"`
	ShowContactButton    bool         `json:"showContactButton"`
	ShowEmergencyWarning bool         `json:"showEmergencyWarning"`
}

// Chat handles POST /api/chat requests.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "triage.chat")
	defer span.End()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("triage: failed to decode chat request", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "הודעה לא תקינה",
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "הודעה לא יכולה להיות ריקה",
		})
		return
	}

	result := Classify(req.Message)
	h.metrics.ObserveClassification(string(result.UrgencyLevel))
	h.logger.Info("triage: message classified",
		"urgency", result.UrgencyLevel,
		"category", result.Category,
		"emergency", result.ShowEmergencyWarning,
	)

	writeJSON(w, http.StatusOK, chatResponse{
		Success:              true,
		Response:             result.Response,
		Type:                 result.UrgencyLevel,
		Category:             result.Category,
		UrgencyLabel:         UrgencyLabel(result.UrgencyLevel),
		FollowUp:             result.FollowUp,
		ShowContactButton:    result.ShowContactButton,
		ShowEmergencyWarning: result.ShowEmergencyWarning,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
