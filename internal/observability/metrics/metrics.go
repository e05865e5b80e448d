package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentledger_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentledger_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentledger_registrations_total",
		Help: "Count of account registration attempts by result",
	}, []string{"result"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentledger_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	propertiesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentledger_properties_saved_total",
		Help: "Count of property create/update operations",
	})

	propertiesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentledger_properties_deleted_total",
		Help: "Count of property deletions (each triggers renumbering)",
	})

	emailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentledger_emails_sent_total",
		Help: "Count of notification emails by template and result",
	}, []string{"template", "result"})

	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentledger_reports_generated_total",
		Help: "Count of generated report exports by format",
	}, []string{"format"})

	openSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentledger_open_sessions",
		Help: "Number of open per-user database sessions",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveRegistration records a registration attempt with a result label.
func ObserveRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// ObserveLogin records a login attempt with a result label.
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObservePropertySaved increments the property save counter.
func ObservePropertySaved() {
	propertiesSaved.Inc()
}

// ObservePropertyDeleted increments the property delete counter.
func ObservePropertyDeleted() {
	propertiesDeleted.Inc()
}

// ObserveEmail records an email send attempt for the given template.
func ObserveEmail(template, result string) {
	emailsSent.WithLabelValues(template, result).Inc()
}

// ObserveReport records a generated report export.
func ObserveReport(format string) {
	reportsGenerated.WithLabelValues(format).Inc()
}

// SetOpenSessions sets the open session gauge to a specific count.
func SetOpenSessions(count int) {
	if count < 0 {
		count = 0
	}
	openSessions.Set(float64(count))
}
