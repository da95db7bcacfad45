package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("frontdesk", "worker", reg)

	m.OutboxEventsProcessed.WithLabelValues("patient.created").Inc()
	m.OutboxEventsProcessed.WithLabelValues("patient.created").Inc()
	m.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
		if f.GetName() == "frontdesk_worker_outbox_events_processed_total" {
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, 2.0, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.Contains(t, names, "frontdesk_worker_outbox_events_processed_total")
	assert.Contains(t, names, "frontdesk_worker_database_operations_total")
}

func TestNewMetricsTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics("frontdesk", "worker", prometheus.NewRegistry())
		NewMetrics("frontdesk", "worker", prometheus.NewRegistry())
	})
}
