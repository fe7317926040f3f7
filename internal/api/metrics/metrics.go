// Package metrics defines and registers all custom Prometheus metrics for the
// registration service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registration"

// RegistrationsTotal counts registration submissions by outcome.
// Label:
//   - outcome: "signed_in", "pending_confirmation", "validation_failed", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of registration submissions, by outcome.",
	},
	[]string{"outcome"},
)

// ConfirmationEmailsTotal counts confirmation email dispatch attempts.
// Label:
//   - status: "sent" or "failed"
var ConfirmationEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmation_emails_total",
		Help:      "Total number of confirmation emails dispatched, by status.",
	},
	[]string{"status"},
)

// EmailConfirmationsTotal counts confirmation-link redemptions.
// Label:
//   - result: "confirmed" or "rejected"
var EmailConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_confirmations_total",
		Help:      "Total number of email confirmation redemptions, by result.",
	},
	[]string{"result"},
)

// RegistrationDuration measures how long a registration submission takes
// end-to-end, including user creation and email dispatch.
var RegistrationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submission_duration_seconds",
		Help:      "Duration of registration submission handling.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
