package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	metrics "github.com/tigerroll/pipelines/pkg/web/core/metrics"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// Middleware decorates an http.Handler.
type Middleware func(http.Handler) http.Handler

// RouteLabeler maps a request to a bounded route label.
type RouteLabeler func(*http.Request) string

type requestIDKey struct{}

// Chain wraps h with middlewares, the first one being the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestIDFromContext returns the request ID stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// responseRecorder captures the status code and body size written by the wrapped handler.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// RequestID echoes a well-formed client supplied X-Request-ID or assigns a new UUID.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}

// AccessLog logs one line per request. At DEBUG level the request headers are
// included with credentials redacted.
func AccessLog() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseRecorder(w)

			next.ServeHTTP(rw, r)

			// The path is decoded, so quote it to keep control characters on one line.
			logger.Infof("%s %q %d %dB %s id=%s",
				r.Method, r.URL.Path, rw.status, rw.bytes, time.Since(start), RequestIDFromContext(r.Context()))
			if logger.IsDebugEnabled() {
				logger.Debugf("Request %s headers: %s", RequestIDFromContext(r.Context()), redactHeaders(r.Header))
			}
		})
	}
}

var sensitiveHeaders = map[string]bool{
	"Authorization":       true,
	"Cookie":              true,
	"Proxy-Authorization": true,
	"Set-Cookie":          true,
}

func redactHeaders(h http.Header) string {
	var sb strings.Builder
	for name, values := range h {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		if sensitiveHeaders[http.CanonicalHeaderKey(name)] {
			fmt.Fprintf(&sb, "%s=[REDACTED]", name)
			continue
		}
		fmt.Fprintf(&sb, "%s=%s", name, strings.Join(values, ","))
	}
	return sb.String()
}

// Tracing starts a server span named "<METHOD> <route>" for every request,
// continuing any trace carried in the request headers as understood by the
// global propagator.
func Tracing(tp trace.TracerProvider, label RouteLabeler) Middleware {
	tracer := tp.Tracer("github.com/tigerroll/pipelines/pkg/web/server")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			route := label(r)

			ctx, span := tracer.Start(ctx, r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("http.route", route),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			rw := newResponseRecorder(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.response.status_code", rw.status))
			if rw.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rw.status))
			}
		})
	}
}

// Metrics reports every request to recorder.
func Metrics(recorder metrics.MetricRecorder, label RouteLabeler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseRecorder(w)

			next.ServeHTTP(rw, r)

			recorder.RecordRequest(r.Context(), metrics.RequestObservation{
				Method:   r.Method,
				Route:    label(r),
				Status:   rw.status,
				Bytes:    rw.bytes,
				Duration: time.Since(start),
			})
		})
	}
}
