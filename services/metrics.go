package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters for the operations whose failures are not
// returned to callers.
type Metrics struct {
	mirrorSync        *prometheus.CounterVec
	mirrorFailures    prometheus.Counter
	reconcileRuns     prometheus.Counter
	reconcileRepaired *prometheus.CounterVec
	notifications     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mirrorSync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catering_mirror_sync_total",
			Help: "Payment to booking mirror writes by result.",
		}, []string{"result"}),
		mirrorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catering_mirror_sync_failures_total",
			Help: "Payment to booking mirror writes that failed.",
		}),
		reconcileRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catering_reconcile_runs_total",
			Help: "Completed payment reconciliation runs.",
		}),
		reconcileRepaired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catering_reconcile_repaired_total",
			Help: "Records repaired by reconciliation, by kind.",
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catering_notifications_total",
			Help: "Customer notifications by channel and status.",
		}, []string{"channel", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catering_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.mirrorSync,
		m.mirrorFailures,
		m.reconcileRuns,
		m.reconcileRepaired,
		m.notifications,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) MirrorSynced(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.mirrorSync.WithLabelValues("ok").Inc()
		return
	}
	m.mirrorSync.WithLabelValues("failed").Inc()
	m.mirrorFailures.Inc()
}

func (m *Metrics) ReconcileFinished(report ReconcileReport) {
	if m == nil {
		return
	}
	m.reconcileRuns.Inc()
	m.reconcileRepaired.WithLabelValues("payment").Add(float64(report.PaymentsRepaired))
	m.reconcileRepaired.WithLabelValues("mirror").Add(float64(report.MirrorsRepaired))
}

func (m *Metrics) NotificationSent(channel, status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, status).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())
}
