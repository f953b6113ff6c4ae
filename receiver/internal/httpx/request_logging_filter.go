package httpx

import (
	"net/http"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is the response header that carries the ID assigned to each
// request.
const RequestIDHeader = "X-Request-Id"

// requestLoggingFilter is a component that implements the http.Filter
// interface and logs one line for every request it lets through.
type requestLoggingFilter struct {
	logger *zap.Logger
	// newRequestIDFn is overridable for testing purposes
	newRequestIDFn func() string
}

// NewRequestLoggingFilter returns a component that implements the http.Filter
// interface and logs the method, path, status and duration of every request.
func NewRequestLoggingFilter(logger *zap.Logger) libHTTP.Filter {
	return &requestLoggingFilter{
		logger:         logger,
		newRequestIDFn: uuid.NewString,
	}
}

func (r *requestLoggingFilter) Decorate(
	handle http.HandlerFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		requestID := r.newRequestIDFn()
		w.Header().Set(RequestIDHeader, requestID)
		metrics := httpsnoop.CaptureMetrics(handle, w, req)
		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", metrics.Code),
			zap.Duration("duration", metrics.Duration),
			zap.Int64("bytes", metrics.Written),
		}
		if metrics.Code >= http.StatusInternalServerError {
			r.logger.Warn("request handled", fields...)
			return
		}
		r.logger.Info("request handled", fields...)
	}
}
