package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the hub's Prometheus instruments.
type Metrics struct {
	// sessions counts open editing sessions.
	sessions prometheus.Gauge

	// clients counts connected websocket clients.
	clients prometheus.Gauge

	// messages counts client messages by type and outcome (ok, error).
	messages *prometheus.CounterVec

	// saves counts snapshot saves by outcome (ok, error).
	saves *prometheus.CounterVec

	// renderSeconds measures export rendering by format (png, pdf).
	renderSeconds *prometheus.HistogramVec
}

// NewMetrics registers the hub metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "drawtools",
			Subsystem: "remote",
			Name:      "sessions",
			Help:      "Open editing sessions",
		}),
		clients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "drawtools",
			Subsystem: "remote",
			Name:      "clients",
			Help:      "Connected websocket clients",
		}),
		messages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drawtools",
			Subsystem: "remote",
			Name:      "messages_total",
			Help:      "Client messages handled",
		}, []string{"type", "status"}),
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drawtools",
			Subsystem: "remote",
			Name:      "saves_total",
			Help:      "Drawing snapshot saves",
		}, []string{"status"}),
		renderSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "drawtools",
			Subsystem: "remote",
			Name:      "render_seconds",
			Help:      "Time to render a drawing export",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"format"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
