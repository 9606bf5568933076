package middleware

import (
	"bytes"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NaMinhyeok/order-practice/internal/core/logger"
)

// Only error bodies are kept; successful responses may carry customer emails.
const maxErrorBodySize = 4 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

type errorBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *errorBodyWriter) capture(n int) bool {
	return w.Status() >= 400 && w.body.Len()+n <= maxErrorBodySize
}

func (w *errorBodyWriter) Write(b []byte) (int, error) {
	if w.capture(len(b)) {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *errorBodyWriter) WriteString(s string) (int, error) {
	if w.capture(len(s)) {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

func levelFor(status int) logger.LogLevel {
	switch {
	case status >= 500:
		return logger.LogLevelError
	case status >= 400:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelInfo
	}
}

// LogRequest writes one structured entry per request. Paths listed in skip
// (health checks, scrapes) are not logged.
func LogRequest(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		c.Writer = &errorBodyWriter{ResponseWriter: c.Writer, body: buf}

		c.Next()

		status := c.Writer.Status()
		attrs := map[string]any{
			"http.method":        c.Request.Method,
			"http.path":          c.Request.URL.Path,
			"http.route":         c.FullPath(),
			"http.status_code":   status,
			"http.duration_ms":   time.Since(start).Milliseconds(),
			"http.client_ip":     c.ClientIP(),
			"http.response_size": c.Writer.Size(),
		}
		if c.Request.ContentLength > 0 {
			attrs["http.request_size"] = c.Request.ContentLength
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs["http.idempotency_key"] = key
		}
		if len(c.Errors) > 0 {
			attrs["http.errors"] = c.Errors.String()
		}
		if buf.Len() > 0 && strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") {
			attrs["http.error_body"] = buf.String()
		}

		logger.Log(c.Request.Context(), logger.LogEntry{
			Level:      levelFor(status),
			Message:    "HTTP Request",
			Attributes: attrs,
		})
	}
}
