package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	m := NewRegistry()
	m.OrdersPlaced.Inc()
	m.StatusUpdates.WithLabelValues("shipped").Inc()
	m.StatusUpdates.WithLabelValues("shipped").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlaced))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusUpdates.WithLabelValues("shipped")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "storefront_orders_placed_total 1")
}
