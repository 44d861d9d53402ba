package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the service's Prometheus metrics
type Collector struct {
	registry         *prometheus.Registry
	vendorApprovals  *prometheus.CounterVec
	vendorRejections prometheus.Counter
	uploads          *prometheus.CounterVec
	promoValidations *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewCollector registers every metric on a fresh registry together with the Go and
// process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		vendorApprovals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rimmarsa_vendor_approvals_total",
			Help: "Vendor request approvals by result.",
		}, []string{"result"}),
		vendorRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rimmarsa_vendor_rejections_total",
			Help: "Vendor requests rejected by an admin.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rimmarsa_uploads_total",
			Help: "Vendor image uploads by result.",
		}, []string{"result"}),
		promoValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rimmarsa_promo_validations_total",
			Help: "Public promo code validations by result.",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rimmarsa_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.vendorApprovals,
		c.vendorRejections,
		c.uploads,
		c.promoValidations,
		c.httpDuration,
	)
	return c
}

// Registry exposes the registry for the /metrics handler
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) VendorApproval(result string) {
	c.vendorApprovals.WithLabelValues(result).Inc()
}

func (c *Collector) VendorRejection() {
	c.vendorRejections.Inc()
}

func (c *Collector) Upload(result string) {
	c.uploads.WithLabelValues(result).Inc()
}

func (c *Collector) PromoValidation(result string) {
	c.promoValidations.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveHTTPRequest(method, route, status string, seconds float64) {
	c.httpDuration.WithLabelValues(method, route, status).Observe(seconds)
}
