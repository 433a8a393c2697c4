package metrics

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// probeRoutes are served to health checkers and kept out of the request metrics.
var probeRoutes = []string{"/health", "/ready"}

// requestDurationBuckets fit a local API whose requests hit an in-memory table and at
// most one whole-file rewrite.
var requestDurationBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// httpMetrics holds HTTP-specific metric instruments.
type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

func newHTTPMetrics(meter metric.Meter, namespace string) (*httpMetrics, error) {
	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of local API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("Local API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(requestDurationBuckets...),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}, nil
}

// HTTPMetricsMiddleware returns a Gin middleware that records local API request metrics
// with method, route and status_code labels. The route is the registered pattern
// (e.g. /v1/records/:id) so record ids never become label values. Probe routes are not
// recorded.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	m, err := newHTTPMetrics(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := sanitizePath(c.FullPath())
		if slices.Contains(probeRoutes, route) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		m.requestCounter.Add(c.Request.Context(), 1, attrs)
		m.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

// sanitizePath returns the route pattern, or "unmatched" for requests that hit no route.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}
