package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "submissions_total",
			Help:      "Booking form submissions by result code.",
		},
		[]string{"result"},
	)

	deletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "deletions_total",
			Help:      "Appointments deleted from the admin listing.",
		},
	)

	adminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result.",
		},
		[]string{"result"},
	)

	storageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking",
			Name:      "storage_failures_total",
			Help:      "Swallowed session slot failures by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(submissions, deletions, adminLogins, storageFailures)
	})
}

func IncSubmission(result string) {
	submissions.WithLabelValues(result).Inc()
}

func IncDeletion() {
	deletions.Inc()
}

func IncAdminLogin(result string) {
	adminLogins.WithLabelValues(result).Inc()
}

func IncStorageFailure(kind string) {
	storageFailures.WithLabelValues(kind).Inc()
}
