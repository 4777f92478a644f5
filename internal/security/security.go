// Package security holds the hardening middleware applied to every request:
// security headers, content-type validation, body size caps and a per-request
// timeout.
package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Config bounds what the API accepts.
type Config struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// DefaultConfig allows 4 MiB bodies and 30s per request. Evaluation payloads
// carry per-frame observations, so the cap is generous.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:   4 << 20,
		RequestTimeout: 30 * time.Second,
	}
}

// Middleware bundles the hardening handlers.
type Middleware struct {
	cfg Config
}

func NewMiddleware(cfg Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// Headers sets the standard security response headers.
func (m *Middleware) Headers(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	if c.Request.TLS != nil {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}
	c.Next()
}

// ValidateContentType rejects bodies that are not JSON.
func (m *Middleware) ValidateContentType(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if contentType != "" && c.Request.Method == http.MethodPost {
		if !strings.Contains(strings.ToLower(contentType), "application/json") {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "unsupported content type",
			})
			return
		}
	}
	c.Next()
}

// LimitBodySize caps the request body to the configured maximum.
func (m *Middleware) LimitBodySize(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.cfg.MaxBodyBytes)
	c.Next()
}

// RequestTimeout bounds how long a single request may run.
func (m *Middleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), m.cfg.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Timeout", strconv.Itoa(int(m.cfg.RequestTimeout.Seconds())))
	c.Next()
}
