package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/farhan/hrmtrack/internal/authz"
)

type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// principalCapture lets the auth middleware, which runs further down the
// chain, report the resolved caller back to the request logger.
type principalCapture struct {
	p *authz.Principal
}

const principalCaptureKey contextKey = "principal_capture"

// Logging writes one line per request. Authenticated requests carry the
// caller's user and company ids, which makes the log usable as a per-tenant
// audit trail.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			capture := &principalCapture{}
			r = r.WithContext(context.WithValue(r.Context(), principalCaptureKey, capture))

			wrapped := &responseWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.status,
				"size", wrapped.size,
				"duration", time.Since(start).String(),
				"ip", getClientIP(r),
			}
			if capture.p != nil {
				attrs = append(attrs, "user_id", capture.p.UserID.String())
				if capture.p.CompanyID != nil {
					attrs = append(attrs, "company_id", capture.p.CompanyID.String())
				}
			}

			logger.Info("request", attrs...)
		})
	}
}
