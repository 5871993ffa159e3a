package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// quietPaths are measured but only logged on failure
var quietPaths = map[string]bool{
	"/api/healthcheck": true,
	"/api/metrics":     true,
}

// ObservabilityMiddleware instruments HTTP requests with metrics and logging
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// Routing is done before the chain runs. The route template keeps
		// draft ids out of metric labels.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		active := metrics.ActiveRequests.WithLabelValues(method, path)
		active.Inc()
		defer active.Dec()

		c.Next()

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, path, statusStr).Inc()

		if quietPaths[path] && status < 400 {
			return
		}

		fields := []zap.Field{
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("draft_id", id))
		}

		if status >= 400 {
			if field := c.Param("field"); field != "" {
				fields = append(fields, zap.String("field", field))
			}
			if index := c.Param("index"); index != "" {
				fields = append(fields, zap.String("slot", index))
			}
		}
		// Edits the page skipped are attached without failing the request.
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}
