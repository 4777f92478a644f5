// Package monitoring holds the structured logger, in-process metrics and the
// request instrumentation middleware.
package monitoring

import (
	"context"
	"log/slog"
	"os"
	"time"
)

var startTime = time.Now()

// Logger is the application-wide structured logger. Output is JSON on
// stdout so the collector can parse it.
type Logger struct {
	*slog.Logger
}

// NewLogger builds the JSON logger at the given level.
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})
	return &Logger{Logger: slog.New(handler)}
}

// RequestLogger logs one handled HTTP request.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("http request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// EvaluationLogger logs one completed candidate evaluation.
func (l *Logger) EvaluationLogger(evaluationID, candidate string, overallScore float64, overallRating int, duration time.Duration, cacheHit bool) {
	l.Info("evaluation completed",
		"evaluation_id", evaluationID,
		"candidate", candidate,
		"overall_score", overallScore,
		"overall_rating", overallRating,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// SentimentLogger logs one call to the sentiment model.
func (l *Logger) SentimentLogger(endpoint string, segments int, duration time.Duration, success bool) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}
	l.Log(context.Background(), level, "sentiment model call",
		"endpoint", endpoint,
		"segments", segments,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// SystemLogger logs lifecycle events (startup, shutdown, cleanup runs).
func (l *Logger) SystemLogger(event, details string) {
	l.Info("system event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}
