package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PostMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpress", Name: "post_mutations_total", Help: "Post mutation pipeline runs by operation and outcome."},
		[]string{"op", "outcome"},
	)
	UploadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "inkpress", Name: "asset_upload_failures_total", Help: "Image uploads that failed and were swallowed by the pipeline."},
	)
	RevalidationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "inkpress", Name: "revalidation_failures_total", Help: "Best-effort page revalidations that failed."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpress", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "inkpress", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PostMutations)
	reg.MustRegister(UploadFailures)
	reg.MustRegister(RevalidationFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
