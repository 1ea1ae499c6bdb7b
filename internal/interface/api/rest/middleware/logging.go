package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contacts-api/internal/infrastructure/metrics"
)

const maxLogBodySize = 1 << 12 // 4 KB

func skipRequestLog(r *http.Request) bool {
	return r.Method == http.MethodOptions ||
		r.URL.Path == "/favicon.ico" ||
		strings.HasSuffix(r.URL.Path, "/metrics") ||
		strings.HasSuffix(r.URL.Path, "/healthz")
}

// RequestLogGin logs one line per request. 5xx go out at error level and 4xx at warn.
// Request bodies are captured only when debug logging is on, never for auth or multipart.
func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	withBody := logger.Core().Enabled(zapcore.DebugLevel)

	return func(c *gin.Context) {
		if skipRequestLog(c.Request) {
			c.Next()
			return
		}

		start := time.Now()
		var body string
		if withBody {
			body = peekBody(c)
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.RequestsTotal).Inc()
		}

		status := c.Writer.Status()
		fields := make([]zap.Field, 0, 9)
		fields = append(fields,
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
		if id, ok := UserID(c); ok {
			fields = append(fields, zap.Stringer("owner_id", id))
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP request", fields...)
		default:
			logger.Info("HTTP request", fields...)
		}
	}
}

// peekBody reads up to maxLogBodySize bytes and puts them back in front of the rest of the body.
func peekBody(c *gin.Context) string {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}
	if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
		return "<multipart/form-data omitted>"
	}
	if strings.Contains(c.Request.URL.Path, "/auth/") {
		return "<omitted>"
	}

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body), c.Request.Body}

	return buf.String()
}
