// Package metrics provides Prometheus metrics for the roomshare server.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/models"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	occupants          prometheus.Gauge
	allocatedRent      prometheus.Gauge
	allocatedUtilities prometheus.Gauge
	rentBudget         prometheus.Gauge
	billsGenerated     *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	operationErrors    *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		occupants: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roomshare_occupants",
			Help: "Number of occupants with an active share",
		}),
		allocatedRent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roomshare_allocated_rent",
			Help: "Sum of rent amounts over active shares",
		}),
		allocatedUtilities: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roomshare_allocated_utilities_percent",
			Help: "Sum of utilities percentages over active shares",
		}),
		rentBudget: factory.NewGauge(prometheus.GaugeOpts{
			Name: "roomshare_rent_budget",
			Help: "Configured total rent budget",
		}),
		billsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomshare_bills_generated_total",
				Help: "Total number of bills created by monthly generation",
			},
			[]string{"type"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomshare_payment_submissions_total",
				Help: "Total number of payment submission transitions",
			},
			[]string{"status"},
		),
		operationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roomshare_operation_errors_total",
				Help: "Total number of failed operations by error kind",
			},
			[]string{"procedure", "kind"},
		),
		rpcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "roomshare_rpc_duration_seconds",
				Help:    "RPC handling duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"procedure"},
		),
	}
}

// SetAllocation records the current allocation totals.
func (m *Metrics) SetAllocation(activeOccupants int, rent, utilities, budget decimal.Decimal) {
	m.occupants.Set(float64(activeOccupants))
	m.allocatedRent.Set(rent.InexactFloat64())
	m.allocatedUtilities.Set(utilities.InexactFloat64())
	m.rentBudget.Set(budget.InexactFloat64())
}

// RecordBillsGenerated counts a generated batch by bill type.
func (m *Metrics) RecordBillsGenerated(bills []*models.Bill) {
	for _, b := range bills {
		m.billsGenerated.WithLabelValues(string(b.Type)).Inc()
	}
}

// RecordSubmission counts a submission entering status.
func (m *Metrics) RecordSubmission(status models.SubmissionStatus) {
	m.submissions.WithLabelValues(string(status)).Inc()
}

// RecordError counts a failed operation by its error kind.
func (m *Metrics) RecordError(procedure string, err error) {
	m.operationErrors.WithLabelValues(procedure, errorKind(err)).Inc()
}

// errorKind classifies err by its core error, falling back to the Connect
// code for errors raised in the transport layer.
func errorKind(err error) string {
	kind := apperr.Kind(err)
	if kind != "internal" {
		return kind
	}
	switch connect.CodeOf(err) {
	case connect.CodeInvalidArgument:
		return "validation"
	case connect.CodeNotFound:
		return "not_found"
	case connect.CodeFailedPrecondition:
		return "conflict"
	default:
		return kind
	}
}

// Interceptor times every RPC and counts failures.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			if err != nil {
				m.RecordError(procedure, err)
			}
			return resp, err
		}
	}
}

// Server is a separate HTTP server for Prometheus metrics.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a metrics server exposing gatherer at /metrics.
func NewServer(port int, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Shutdown. It returns http.ErrServerClosed after a
// graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("Metrics server starting", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
