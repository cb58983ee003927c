package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// WebhookRecorder records webhook processing outcomes. A nil *WebhookRecorder is a no-op.
type WebhookRecorder struct {
	events   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewWebhookRecorder registers the webhook collectors on reg.
func NewWebhookRecorder(reg prometheus.Registerer) (*WebhookRecorder, error) {
	events := NewMetric(MetricsWebhookEvents, "crm").(*prometheus.CounterVec)
	duration := NewMetric(MetricsBusinessProcess, "crm").(*prometheus.HistogramVec)
	for _, c := range []prometheus.Collector{events, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return &WebhookRecorder{events: events, duration: duration}, nil
}

// Observe counts one handled event and its processing latency.
func (r *WebhookRecorder) Observe(eventType string, processed bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.events.WithLabelValues(eventType, strconv.FormatBool(processed)).Inc()
	r.duration.WithLabelValues("webhook", eventType).Observe(float64(elapsed) / float64(time.Millisecond))
}

var Module = fx.Options(
	fx.Provide(func() prometheus.Registerer { return prometheus.DefaultRegisterer }),
	fx.Provide(NewWebhookRecorder),
)
