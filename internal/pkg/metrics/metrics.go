package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// 广告位操作结果
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
	AdvertisementActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advertisement_actions_total",
			Help: "Advertisement slot actions by outcome",
		},
		[]string{"action", "outcome"},
	)
	ExpirySweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advertisement_expiry_sweep_total",
			Help: "Slots handled by the expiry sweeper",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

// Register 注册到默认 registry，重复调用无副作用
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			RateLimited,
			AdvertisementActions,
			ExpirySweeps,
		)
	})
}

// ObserveAction 记录一次广告位操作
func ObserveAction(action, outcome string) {
	AdvertisementActions.WithLabelValues(action, outcome).Inc()
}
