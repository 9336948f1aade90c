package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records pricing and image pipeline activity.
type CatalogMetrics struct {
	priceDuration    *prometheus.HistogramVec
	priceResolutions *prometheus.CounterVec
	priceFailures    *prometheus.CounterVec
	mainImageAssigns *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	priceDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "price_resolution_duration_seconds",
		Help:    "Duration of unit price resolutions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	priceResolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_resolutions_total",
		Help: "Unit price resolutions by price source.",
	}, []string{"source"})
	priceFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_resolution_failures_total",
		Help: "Failed unit price resolutions by error code.",
	}, []string{"code"})
	mainImageAssigns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "main_image_assignments_total",
		Help: "Main image assignments by trigger.",
	}, []string{"trigger"})
	reg.MustRegister(priceDuration, priceResolutions, priceFailures, mainImageAssigns)
	return &CatalogMetrics{
		priceDuration:    priceDuration,
		priceResolutions: priceResolutions,
		priceFailures:    priceFailures,
		mainImageAssigns: mainImageAssigns,
	}
}

// ObservePriceResolution records one resolution and its duration. Source is
// "base" or "override" depending on which price row won.
func (c *CatalogMetrics) ObservePriceResolution(source string, duration time.Duration) {
	if c == nil || c.priceDuration == nil {
		return
	}
	label := normalizeLabel(source)
	c.priceDuration.WithLabelValues(label).Observe(duration.Seconds())
	c.priceResolutions.WithLabelValues(label).Inc()
}

// IncPriceFailure increments the failure counter for the given error code.
func (c *CatalogMetrics) IncPriceFailure(code string) {
	if c == nil || c.priceFailures == nil {
		return
	}
	c.priceFailures.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncMainImageAssignment increments the assignment counter. Trigger is
// "create" or "delete" depending on which image event caused the assignment.
func (c *CatalogMetrics) IncMainImageAssignment(trigger string) {
	if c == nil || c.mainImageAssigns == nil {
		return
	}
	c.mainImageAssigns.WithLabelValues(normalizeLabel(trigger)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
