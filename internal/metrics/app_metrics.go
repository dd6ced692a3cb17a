package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// LoginCounter counts sign-in attempts by method (credentials, google) and result
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbuddy_auth_login_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"method", "result"},
	)

	SignupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbuddy_signup_total",
			Help: "Total number of credential sign-ups",
		},
		[]string{"result"},
	)

	// AuthErrorCounter keeps the reason a sign-in failed; callers only ever see a uniform error
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbuddy_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	ProfileUpdateCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelbuddy_profile_updates_total",
			Help: "Total number of profile updates by result",
		},
		[]string{"result"},
	)
)

// Histogram metrics
var (
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelbuddy_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(ProfileUpdateCounter)
	prometheus.MustRegister(DBOperationDuration)
}

// TrackDBOperation measures a database operation; use as
// defer metrics.TrackDBOperation("find_user")()
func TrackDBOperation(operation string) func() {
	start := time.Now()
	return func() {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// RecordLogin records a sign-in attempt
func RecordLogin(method, result string) {
	LoginCounter.WithLabelValues(method, result).Inc()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordSignup records a sign-up attempt
func RecordSignup(result string) {
	SignupCounter.WithLabelValues(result).Inc()
}

// RecordProfileUpdate records a profile update by result
func RecordProfileUpdate(result string) {
	ProfileUpdateCounter.WithLabelValues(result).Inc()
}
