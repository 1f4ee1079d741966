package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig configures request tracing
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	TracerProvider trace.TracerProvider
}

// Tracing returns the otelgin span middleware followed by a handler that tags
// the span with the request ID and the authenticated user. Health probes are
// not traced. A disabled config yields no handlers.
func Tracing(cfg TracingConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgin.Option{
		otelgin.WithFilter(func(r *http.Request) bool {
			return !strings.HasSuffix(r.URL.Path, "/health")
		}),
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return []gin.HandlerFunc{otelgin.Middleware(cfg.ServiceName, opts...), annotateSpan}
}

func annotateSpan(c *gin.Context) {
	c.Next()

	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.String("request_id", GetRequestID(c)))
	if p := GetPrincipal(c); p != nil {
		span.SetAttributes(
			attribute.String("user_id", p.UserID.String()),
			attribute.String("user_role", string(p.Role)),
		)
	}
	if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
		span.SetStatus(codes.Error, errs.String())
	}
}
