// Package metrics exposes Prometheus collectors for HTTP traffic and
// authentication outcomes.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LoginSucceeded is the result label for a successful login.
const LoginSucceeded = "success"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	loginsTotal         *prometheus.CounterVec
	sessionRejections   *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses the default registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		gatherer: gatherer,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		sessionRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_session_rejections_total",
			Help: "Rejected protected requests by reason",
		}, []string{"reason"}),
	}

	collectors := []*prometheus.CounterVec{m.httpRequestsTotal, m.loginsTotal, m.sessionRejections}
	for i, c := range collectors {
		registered, err := registerCollector(reg, c)
		if err != nil {
			return nil, err
		}
		collectors[i] = registered.(*prometheus.CounterVec)
	}
	m.httpRequestsTotal, m.loginsTotal, m.sessionRejections = collectors[0], collectors[1], collectors[2]

	registered, err := registerCollector(reg, m.httpRequestDuration)
	if err != nil {
		return nil, err
	}
	m.httpRequestDuration = registered.(*prometheus.HistogramVec)

	return m, nil
}

// registerCollector registers c, reusing the existing collector on duplicates.
func registerCollector(reg prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector, nil
		}
		return nil, err
	}
	return c, nil
}

// Middleware counts requests and observes their latency. The path label is
// the matched route template, so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// RecordLogin counts a login attempt; result is LoginSucceeded or a rejection reason.
func (m *Metrics) RecordLogin(result string) {
	if m == nil || result == "" {
		return
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// RecordSessionRejection counts a protected request refused for reason.
func (m *Metrics) RecordSessionRejection(reason string) {
	if m == nil || reason == "" {
		return
	}
	m.sessionRejections.WithLabelValues(reason).Inc()
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
