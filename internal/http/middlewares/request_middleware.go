package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID trusts a client supplied id only if it looks like one of ours.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		ctx.Header(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)

		ctx.Next()
	}
}

// RequestLogger writes one record per request. Probe and metrics scrapes
// are logged at debug so they do not drown real traffic.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := ctx.Writer.Status()

		attrs := []slog.Attr{
			slog.String("method", ctx.Request.Method),
			slog.String("route", route),
			slog.String("path", ctx.Request.URL.Path),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			slog.String("request_id", ctx.GetString(CtxRequestID)),
			slog.String("client_ip", ctx.ClientIP()),
		}

		if userID, ok := UserIDFromContext(ctx); ok {
			attrs = append(attrs, slog.Int64("user_id", userID))
		}
		if location := ctx.Writer.Header().Get("Location"); location != "" {
			attrs = append(attrs, slog.String("location", location))
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", ctx.Errors.String()))
		}

		log.LogAttrs(ctx.Request.Context(), requestLevel(route, status), "http_request", attrs...)
	}
}

func requestLevel(route string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case route == "/healthz" || route == "/readyz" || route == "/metrics":
		return slog.LevelDebug
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
