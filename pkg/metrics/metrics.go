package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	EscalationsCreated   *prometheus.CounterVec
	ScanDuration         prometheus.Histogram
	ScanFeedbacks        *prometheus.CounterVec
	AlertsCreated        *prometheus.CounterVec
	AlertTransitions     *prometheus.CounterVec
	NotificationsCreated *prometheus.CounterVec
	NotificationsSent    *prometheus.CounterVec
	NotificationsFailed  *prometheus.CounterVec
	SendDuration         *prometheus.HistogramVec
	BreakerState         *prometheus.GaugeVec
	QueueDepth           prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EscalationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_escalations_created_total",
			Help: "Escalation rows created, by level and trigger reason",
		}, []string{"level", "trigger_reason"}),

		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sla_scan_duration_seconds",
			Help:    "Duration of one SLA deadline scan",
			Buckets: prometheus.DefBuckets,
		}),

		ScanFeedbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_scan_feedbacks_total",
			Help: "Feedbacks evaluated by the SLA scan, by result",
		}, []string{"result"}),

		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_alerts_created_total",
			Help: "Feedback alerts created, by severity",
		}, []string{"severity"}),

		AlertTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_alert_transitions_total",
			Help: "Alert state transitions, by action and outcome",
		}, []string{"action", "outcome"}),

		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Notifications created, by channel",
		}, []string{"channel"}),

		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Notifications handed to a channel sender successfully",
		}, []string{"channel"}),

		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Notification send attempts that failed",
		}, []string{"channel"}),

		SendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notification_send_duration_seconds",
			Help:    "Channel sender latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"channel"}),

		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "notification_breaker_state",
			Help: "Circuit breaker state per channel (0 closed, 1 half-open, 2 open)",
		}, []string{"channel"}),

		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "notification_dispatch_queue_depth",
			Help: "Notifications waiting for a dispatch worker",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.EscalationsCreated,
			m.ScanDuration,
			m.ScanFeedbacks,
			m.AlertsCreated,
			m.AlertTransitions,
			m.NotificationsCreated,
			m.NotificationsSent,
			m.NotificationsFailed,
			m.SendDuration,
			m.BreakerState,
			m.QueueDepth,
		)
	}
	return m
}

func (m *Metrics) EscalationCreated(level int, reason string) {
	if m == nil {
		return
	}
	m.EscalationsCreated.WithLabelValues(itoa(level), reason).Inc()
}

func (m *Metrics) ObserveScan(d time.Duration, evaluated, failed int) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(d.Seconds())
	m.ScanFeedbacks.WithLabelValues("ok").Add(float64(evaluated - failed))
	m.ScanFeedbacks.WithLabelValues("failed").Add(float64(failed))
}

func (m *Metrics) AlertCreated(severity string) {
	if m == nil {
		return
	}
	m.AlertsCreated.WithLabelValues(severity).Inc()
}

func (m *Metrics) AlertTransition(action string, ok bool) {
	if m == nil {
		return
	}
	outcome := "applied"
	if !ok {
		outcome = "rejected"
	}
	m.AlertTransitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) NotificationCreated(channel string) {
	if m == nil {
		return
	}
	m.NotificationsCreated.WithLabelValues(channel).Inc()
}

func (m *Metrics) SendResult(channel string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.SendDuration.WithLabelValues(channel).Observe(d.Seconds())
	if err != nil {
		m.NotificationsFailed.WithLabelValues(channel).Inc()
		return
	}
	m.NotificationsSent.WithLabelValues(channel).Inc()
}

func (m *Metrics) SetBreakerState(channel string, state int) {
	if m == nil {
		return
	}
	m.BreakerState.WithLabelValues(channel).Set(float64(state))
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}

func itoa(n int) string {
	switch n {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3"
	}
	return "0"
}
