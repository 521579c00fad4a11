package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts contact-form submissions by result
	// (accepted|validation_failed|storage_failed|delivery_failed).
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"result"},
	)

	// Verifications counts verification-link visits by result
	// (confirmed|not_found|delivery_failed).
	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_verifications_total",
			Help: "Total number of verification attempts",
		},
		[]string{"result"},
	)

	// MailSends counts outbound emails by kind (verification|final) and result.
	MailSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_mail_sends_total",
			Help: "Total number of outbound email deliveries",
		},
		[]string{"kind", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
