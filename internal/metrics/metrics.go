// Package metrics exposes pipeline run counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the counters recorded during one pipeline run.
type Registry struct {
	reg *prometheus.Registry

	CustomersRead      prometheus.Counter
	CustomersDropped   prometheus.Counter
	CustomerDuplicates prometheus.Counter
	OrdersRead         prometheus.Counter
	OrdersDropped      prometheus.Counter
	OrderDuplicates    prometheus.Counter
	CustomersUpserted  prometheus.Counter
	OrderFactsUpserted prometheus.Counter
	OrderItemsUpserted prometheus.Counter
}

// NewRegistry creates a registry with all pipeline counters registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	customersRead := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_customers_read_total"})
	customersDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_customers_dropped_total"})
	customerDuplicates := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_customer_duplicates_total"})
	ordersRead := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_orders_read_total"})
	ordersDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_orders_dropped_total"})
	orderDuplicates := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_order_duplicates_total"})
	customersUpserted := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_customers_upserted_total"})
	orderFactsUpserted := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_order_facts_upserted_total"})
	orderItemsUpserted := prometheus.NewCounter(prometheus.CounterOpts{Name: "pipeline_order_items_upserted_total"})

	r.MustRegister(
		customersRead, customersDropped, customerDuplicates,
		ordersRead, ordersDropped, orderDuplicates,
		customersUpserted, orderFactsUpserted, orderItemsUpserted,
	)

	return &Registry{
		reg:                r,
		CustomersRead:      customersRead,
		CustomersDropped:   customersDropped,
		CustomerDuplicates: customerDuplicates,
		OrdersRead:         ordersRead,
		OrdersDropped:      ordersDropped,
		OrderDuplicates:    orderDuplicates,
		CustomersUpserted:  customersUpserted,
		OrderFactsUpserted: orderFactsUpserted,
		OrderItemsUpserted: orderItemsUpserted,
	}
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
