package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Metrics owns a private registry so several servers (and tests) can live
// in one process.
type Metrics struct {
	reg *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	statusOverrides   *prometheus.CounterVec
	positionUpdates   prometheus.Counter
	seriesGenerated   *prometheus.CounterVec
	podsByStatus      *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podmon_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "podmon_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		statusOverrides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podmon_status_overrides_total",
			Help: "Manual pod status overrides by resulting status.",
		}, []string{"status"}),
		positionUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "podmon_position_updates_total",
			Help: "Committed floorplan position updates.",
		}),
		seriesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "podmon_series_generated_total",
			Help: "Generated telemetry series by time frame.",
		}, []string{"frame"}),
		podsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "podmon_pods",
			Help: "Pods currently in each status.",
		}, []string{"status"}),
	}
	m.reg.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.statusOverrides,
		m.positionUpdates,
		m.seriesGenerated,
		m.podsByStatus,
	)
	return m
}

func (m *Metrics) StatusOverride(s domain.Status) {
	m.statusOverrides.WithLabelValues(string(s)).Inc()
}

func (m *Metrics) PositionUpdate() {
	m.positionUpdates.Inc()
}

func (m *Metrics) SeriesGenerated(tf domain.TimeFrame) {
	m.seriesGenerated.WithLabelValues(string(tf)).Inc()
}

// ObserveFleet refreshes the per-status gauge from a fleet snapshot.
func (m *Metrics) ObserveFleet(pods []domain.Pod) {
	counts := map[domain.Status]int{}
	for _, p := range pods {
		counts[p.Status]++
	}
	for _, s := range domain.Statuses {
		m.podsByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for assertions.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware counts requests under a fixed route label.
func (m *Metrics) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
