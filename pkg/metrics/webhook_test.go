package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestWebhookRecorder_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewWebhookRecorder(reg)
	require.NoError(t, err)

	r.Observe("customer.subscription.created", true, 12*time.Millisecond)
	r.Observe("customer.subscription.created", true, 3*time.Millisecond)
	r.Observe("invoice.payment_succeeded", false, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(r.events.WithLabelValues("customer.subscription.created", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues("invoice.payment_succeeded", "false")))
}

func TestWebhookRecorder_NilIsNoop(t *testing.T) {
	var r *WebhookRecorder
	require.NotPanics(t, func() { r.Observe("x", true, time.Second) })
}

func TestWebhookRecorder_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewWebhookRecorder(reg)
	require.NoError(t, err)
	_, err = NewWebhookRecorder(reg)
	require.Error(t, err)
}
