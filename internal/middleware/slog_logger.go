package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns middleware that writes one structured line per
// request to log once the handler chain has returned. 5xx responses are
// logged at warn level.
//
// Mount it after chimiddleware.RequestID and NewClientIDHandler so the
// request id and client id are in the context.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				// Nothing was written; net/http answers 200.
				status = http.StatusOK
			}
			log.LogAttrs(r.Context(), levelFor(status), "request", requestAttrs(r, status, ww.BytesWritten(), time.Since(start))...)
		})
	}
}

func levelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func requestAttrs(r *http.Request, status, written int, elapsed time.Duration) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Int("bytes", written),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
	}
	if id, ok := ClientIDFrom(r.Context()); ok {
		attrs = append(attrs, slog.String("client_id", id.String()))
	}
	return attrs
}
