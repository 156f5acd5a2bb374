// Package metrics exposes prometheus instruments for the HTTP surface and
// the invoice pipeline.
package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the constant labels attached to every series.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics captures request-level and invoice pipeline signals.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	invoices    *prometheus.CounterVec
	pdfRenders  *prometheus.CounterVec
	logoUploads *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// WithConfig returns the singleton metrics registry using config labels.
func WithConfig(cfg Config) *Metrics {
	metricsOnce.Do(func() {
		metrics = newMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return metrics
}

// ResetForTest resets the metrics singleton for tests.
func ResetForTest() {
	metricsOnce = sync.Once{}
	metrics = nil
}

func newMetrics(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "invoicegen"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicegen_http_requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "invoicegen_http_request_duration_seconds",
			Help:        "HTTP request latency by route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicegen_invoices_total",
			Help:        "Invoice mutations by operation and result.",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		pdfRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicegen_pdf_renders_total",
			Help:        "PDF renders by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		logoUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "invoicegen_logo_uploads_total",
			Help:        "Logo uploads by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	registerer.MustRegister(m.requests, m.duration, m.invoices, m.pdfRenders, m.logoUploads)
	return m
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordInvoiceOp counts one invoice mutation.
func (m *Metrics) RecordInvoiceOp(operation, result string) {
	if m == nil {
		return
	}
	m.invoices.WithLabelValues(operation, result).Inc()
}

// RecordPDFRender counts one render attempt.
func (m *Metrics) RecordPDFRender(result string) {
	if m == nil {
		return
	}
	m.pdfRenders.WithLabelValues(result).Inc()
}

// RecordLogoUpload counts one upload attempt.
func (m *Metrics) RecordLogoUpload(result string) {
	if m == nil {
		return
	}
	m.logoUploads.WithLabelValues(result).Inc()
}
