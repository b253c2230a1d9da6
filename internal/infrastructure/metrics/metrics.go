package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"commerce-api/internal/domain/repository"
	"commerce-api/internal/logs"
)

var (
	requestLogsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commerce_api_request_logs_created_total",
		Help: "API request logs written, by outcome",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commerce_api_request_duration_seconds",
		Help:    "Duration of logged API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"version"})
)

// RegisterLogHooks counts every API request log insert
func RegisterLogHooks(svc *logs.Service, logger *zap.Logger) {
	svc.OnPostInsert(func(args repository.Fields, id int64) {
		if id == 0 {
			requestLogsCreated.WithLabelValues("failure").Inc()
			return
		}
		requestLogsCreated.WithLabelValues("success").Inc()

		version, _ := args["version"].(string)
		if seconds, ok := args["time"].(float64); ok {
			requestDuration.WithLabelValues(version).Observe(seconds)
		}
	})

	logger.Debug("API request log metrics registered")
}

var Module = fx.Module("metrics",
	fx.Invoke(RegisterLogHooks),
)
