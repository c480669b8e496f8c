package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AttachmentUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "attachment_uploads_total", Help: "Number of attachment uploads by outcome."},
		[]string{"outcome"},
	)
	SweepRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "expiration_sweep_runs_total", Help: "Number of expiration sweep executions."},
	)
	SweepLoggedDocuments = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "expiration_sweep_logged_documents_total", Help: "Number of dated documents written to expiration logs."},
	)
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "emails_sent_total", Help: "Number of notification emails sent."},
	)
	EmailsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "docfolio", Name: "emails_failed_total", Help: "Number of notification emails that could not be delivered."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AttachmentUploads)
	reg.MustRegister(SweepRuns)
	reg.MustRegister(SweepLoggedDocuments)
	reg.MustRegister(EmailsSent)
	reg.MustRegister(EmailsFailed)
}
