package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	GatewayOrdersCreated prometheus.Counter
	GatewayOrdersFailed  prometheus.Counter
	SignatureMismatches  prometheus.Counter
	OrdersPlaced         prometheus.Counter
	OrderValue           prometheus.Histogram
	StatusUpdates        *prometheus.CounterVec
	EventPublishFailures prometheus.Counter
	RequestLatencySec    *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_gateway_orders_created_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_gateway_orders_failed_total"})
	mismatches := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_signature_mismatches_total"})
	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_placed_total"})
	value := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_value_rupees",
		Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000},
	})
	statusUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_status_updates_total",
	}, []string{"order_status"})
	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_event_publish_failures_total"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	r.MustRegister(
		created, failed, mismatches, placed, value, statusUpdates, publishFailures, latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:                  r,
		GatewayOrdersCreated: created,
		GatewayOrdersFailed:  failed,
		SignatureMismatches:  mismatches,
		OrdersPlaced:         placed,
		OrderValue:           value,
		StatusUpdates:        statusUpdates,
		EventPublishFailures: publishFailures,
		RequestLatencySec:    latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
