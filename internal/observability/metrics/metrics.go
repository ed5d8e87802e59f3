package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics exposes counters for the symptom triage engine.
type TriageMetrics struct {
	classifications *prometheus.CounterVec
}

func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	m := &TriageMetrics{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "triage",
			Name:      "classifications_total",
			Help:      "Total triage classifications by urgency level",
		}, []string{"urgency"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.classifications)
	return m
}

func (m *TriageMetrics) ObserveClassification(urgency string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(urgency).Inc()
}

// SchedulingMetrics exposes counters/histograms for slot queries and bookings.
type SchedulingMetrics struct {
	bookingsTotal    *prometheus.CounterVec
	slotQueryLatency *prometheus.HistogramVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Total appointment booking attempts",
		}, []string{"type", "status"}),
		slotQueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "scheduling",
			Name:      "slot_query_seconds",
			Help:      "Latency of slot availability queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.slotQueryLatency)
	return m
}

func (m *SchedulingMetrics) ObserveBooking(appointmentType, status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(appointmentType, status).Inc()
}

func (m *SchedulingMetrics) ObserveSlotQuery(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.slotQueryLatency.WithLabelValues(outcome).Observe(seconds)
}

// AssistantMetrics tracks guided chat sessions.
type AssistantMetrics struct {
	sessionsTotal    *prometheus.CounterVec
	escalationsTotal prometheus.Counter
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		sessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "sessions_total",
			Help:      "Total assistant chat sessions by terminal outcome",
		}, []string{"outcome"}),
		escalationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "assistant",
			Name:      "emergency_escalations_total",
			Help:      "Scripted conversations ending in the emergency branch",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsTotal, m.escalationsTotal)
	return m
}

func (m *AssistantMetrics) ObserveSession(outcome string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(outcome).Inc()
}

func (m *AssistantMetrics) ObserveEscalation() {
	if m == nil {
		return
	}
	m.escalationsTotal.Inc()
}
