package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	connectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orewire_connections_total",
		Help: "Total number of accepted TCP connections.",
	})

	playersOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orewire_players_online",
		Help: "Current number of players in the Play state.",
	})

	packetsReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orewire_packets_received_total",
		Help: "Total packets received, by protocol state.",
	}, []string{"state"})

	packetsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orewire_packets_sent_total",
		Help: "Total packets sent, by protocol state.",
	}, []string{"state"})

	tickDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orewire_tick_duration_seconds",
		Help:    "Wall-clock duration of each tick.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
	})

	tickOverloadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orewire_tick_overloaded_total",
		Help: "Number of ticks that ran over the 50ms budget after more than 10 consecutive over-budget ticks.",
	})
)

// MetricsServer serves Prometheus metrics over HTTP, mirroring the
// pack's promhttp.Handler()-on-its-own-mux convention.
type MetricsServer struct {
	httpServer *http.Server
}

// NewMetricsServer builds (but does not start) a metrics server bound to
// addr, always serving at /metrics.
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &MetricsServer{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start runs the metrics server in the background.
func (m *MetricsServer) Start() {
	go func() {
		if err := m.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("metrics server error")
		}
	}()
}

// Stop gracefully shuts the metrics server down.
func (m *MetricsServer) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
