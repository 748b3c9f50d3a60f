package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrackerHeader carries the per-request id echoed back to the caller and
// written into both audit records.
const TrackerHeader = "tracker_id"

// CORSMaxAge is how long, in seconds, browsers may cache a preflight answer.
const CORSMaxAge = "1728000"

// CORS allows any origin, method and header, and answers preflight requests
// without reaching the handlers.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "*")
		h.Set("Access-Control-Allow-Headers", "*")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Max-Age", CORSMaxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Authenticate is the hook for request authentication. Every request passes.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// RequestLogger writes a REQUEST record before the handler runs and a
// RESPONSE record after it, both tagged with a fresh tracker id.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		tracker := strings.ReplaceAll(uuid.NewString(), "-", "")
		c.Set(TrackerHeader, tracker)
		c.Header(TrackerHeader, tracker)

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		log.Info("REQUEST",
			"tracker_id", tracker,
			"remote_addr", c.ClientIP(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"params", c.Request.URL.Query(),
			"headers", c.Request.Header,
			"body", string(body),
		)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		log.Info("RESPONSE",
			"tracker_id", tracker,
			"status", rec.Status(),
			"headers", rec.Header(),
			"body", rec.body.String(),
			"response_time", time.Since(start).Seconds(),
		)
	}
}
