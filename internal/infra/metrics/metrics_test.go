package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.LoginsTotal.WithLabelValues("accepted").Inc()
	m.LoginsTotal.WithLabelValues("accepted").Inc()
	m.LoginsTotal.WithLabelValues("rejected").Inc()
	m.CheckoutRevenueTotal.Add(118)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues("accepted")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues("rejected")), 1e-9)
	assert.InDelta(t, 118.0, testutil.ToFloat64(m.CheckoutRevenueTotal), 1e-9)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.CheckoutsTotal.Inc()

	path := filepath.Join(t.TempDir(), "campuscart.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "campuscart_checkouts_total 1")
}
