package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors of the application.
//
// Metrics:
//   - edupulse_http_requests_total{method,route,status}
//   - edupulse_http_request_duration_seconds{method,route}
//   - edupulse_session_transitions_total{transition}
//   - edupulse_payments_total{currency,method}
//   - edupulse_predictions_total{level}
//   - edupulse_chat_messages_total{kind}
//   - edupulse_chat_connections
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SessionTransitionsTotal *prometheus.CounterVec
	PaymentsTotal           *prometheus.CounterVec
	PredictionsTotal        *prometheus.CounterVec

	ChatMessagesTotal *prometheus.CounterVec
	ChatConnections   prometheus.Gauge
}

// NewMetrics registers the collectors on the default registry once and
// returns the shared instance on every call.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "edupulse_http_requests_total",
					Help: "Total number of HTTP requests served",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "edupulse_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			SessionTransitionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "edupulse_session_transitions_total",
					Help: "Total number of mentorship session transitions",
				},
				[]string{"transition"},
			),
			PaymentsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "edupulse_payments_total",
					Help: "Total number of recorded payments",
				},
				[]string{"currency", "method"},
			),
			PredictionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "edupulse_predictions_total",
					Help: "Total number of risk predictions by level",
				},
				[]string{"level"},
			),
			ChatMessagesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "edupulse_chat_messages_total",
					Help: "Total number of chat lines appended",
				},
				[]string{"kind"},
			),
			ChatConnections: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "edupulse_chat_connections",
					Help: "Number of open chat WebSocket connections",
				},
			),
		}
	})
	return globalMetrics
}

// Session transition labels
const (
	TransitionRequest  = "request"
	TransitionAccept   = "accept"
	TransitionReject   = "reject"
	TransitionPay      = "pay"
	TransitionActivate = "activate"
	TransitionComplete = "complete"
)

// Chat line kinds
const (
	ChatKindMessage = "message"
	ChatKindJoin    = "join"
	ChatKindLeave   = "leave"
)

func (m *Metrics) RecordTransition(transition string) {
	m.SessionTransitionsTotal.WithLabelValues(transition).Inc()
}

func (m *Metrics) RecordPayment(currency, method string) {
	m.PaymentsTotal.WithLabelValues(currency, method).Inc()
}

func (m *Metrics) RecordPrediction(level string) {
	m.PredictionsTotal.WithLabelValues(level).Inc()
}

func (m *Metrics) RecordChatLine(kind string) {
	m.ChatMessagesTotal.WithLabelValues(kind).Inc()
}
