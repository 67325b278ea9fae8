// Package metrics exposes Prometheus collectors for forecasts, exports,
// background jobs and HTTP traffic.
package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	metricPrefix = "budget_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	forecastTotal   *prometheus.CounterVec
	forecastLatency *prometheus.HistogramVec
	bufferStatus    *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	jobTotal   *prometheus.CounterVec
	jobLatency *prometheus.HistogramVec

	depositsApplied prometheus.Counter
	alertsSent      prometheus.Counter

	httpRequests *prometheus.CounterVec
)

// Init registers the collectors once. db may be nil.
func Init(db *sql.DB) {
	registerOnce.Do(func() {
		forecastTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "forecast_total",
				Help: "Total forecast runs by result",
			},
			[]string{"result"},
		)
		forecastLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "forecast_latency_seconds",
				Help:    "Forecast latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		bufferStatus = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "forecast_buffer_status_total",
				Help: "Completed forecasts by buffer status",
			},
			[]string{"status"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "forecast_export_total",
				Help: "Total forecast exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "forecast_export_latency_seconds",
				Help:    "Forecast export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		jobTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "job_runs_total",
				Help: "Total scheduled job runs by job and result",
			},
			[]string{"job", "result"},
		)
		jobLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "job_latency_seconds",
				Help:    "Scheduled job latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job", "result"},
		)

		depositsApplied = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "recurring_deposits_applied_total",
				Help: "Total recurring fund deposits applied",
			},
		)
		alertsSent = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "buffer_alerts_sent_total",
				Help: "Total buffer alert emails sent",
			},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		)

		prometheus.MustRegister(
			forecastTotal,
			forecastLatency,
			bufferStatus,
			exportTotal,
			exportLatency,
			jobTotal,
			jobLatency,
			depositsApplied,
			alertsSent,
			httpRequests,
		)

		if db != nil {
			prometheus.MustRegister(collectors.NewDBStatsCollector(db, "budget"))
		}
	})
}

// ObserveForecast records forecast latency and result.
func ObserveForecast(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if forecastTotal != nil {
		forecastTotal.WithLabelValues(result).Inc()
	}
	if forecastLatency != nil {
		forecastLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncBufferStatus counts a completed forecast by its buffer status.
func IncBufferStatus(status string) {
	if status == "" {
		status = "unknown"
	}
	if bufferStatus != nil {
		bufferStatus.WithLabelValues(status).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// ObserveJob records a scheduled job run.
func ObserveJob(job, result string, duration time.Duration) {
	if job == "" {
		job = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if jobTotal != nil {
		jobTotal.WithLabelValues(job, result).Inc()
	}
	if jobLatency != nil {
		jobLatency.WithLabelValues(job, result).Observe(duration.Seconds())
	}
}

// AddDeposits increments the applied deposit counter by count.
func AddDeposits(count int) {
	if count <= 0 {
		return
	}
	if depositsApplied != nil {
		depositsApplied.Add(float64(count))
	}
}

// IncAlertSent increments the buffer alert counter.
func IncAlertSent() {
	if alertsSent != nil {
		alertsSent.Inc()
	}
}

// IncHTTPRequest counts a served request.
func IncHTTPRequest(route, code string) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(route, code).Inc()
	}
}

// ResultFor maps an error to a result label.
func ResultFor(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
