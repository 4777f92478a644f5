package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds in-process counters for the /metrics endpoint. Counters use
// atomics; the response-time window and maps take their own locks.
type Metrics struct {
	RequestCount    int64
	ErrorCount      int64
	CacheHits       int64
	CacheMisses     int64
	EvaluationCount int64
	SentimentCalls  int64
	SentimentErrors int64
	RateLimitBlocks int64
	StartTime       time.Time

	// Last 1000 response times, for percentiles.
	responseTimes   []time.Duration
	responseTimesMu sync.RWMutex

	requestsByStatus map[int]int64
	statusMu         sync.RWMutex
}

func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:        time.Now(),
		responseTimes:    make([]time.Duration, 0, 1000),
		requestsByStatus: make(map[int]int64),
	}
}

func (m *Metrics) IncrementRequest()        { atomic.AddInt64(&m.RequestCount, 1) }
func (m *Metrics) IncrementError()          { atomic.AddInt64(&m.ErrorCount, 1) }
func (m *Metrics) IncrementCacheHit()       { atomic.AddInt64(&m.CacheHits, 1) }
func (m *Metrics) IncrementCacheMiss()      { atomic.AddInt64(&m.CacheMisses, 1) }
func (m *Metrics) IncrementEvaluation()     { atomic.AddInt64(&m.EvaluationCount, 1) }
func (m *Metrics) IncrementRateLimitBlock() { atomic.AddInt64(&m.RateLimitBlocks, 1) }

// RecordSentimentCall records one call to the sentiment model.
func (m *Metrics) RecordSentimentCall(success bool) {
	atomic.AddInt64(&m.SentimentCalls, 1)
	if !success {
		atomic.AddInt64(&m.SentimentErrors, 1)
	}
}

// RecordResponseTime keeps the most recent 1000 samples for percentiles.
func (m *Metrics) RecordResponseTime(duration time.Duration) {
	m.responseTimesMu.Lock()
	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > 1000 {
		m.responseTimes = m.responseTimes[1:]
	}
	m.responseTimesMu.Unlock()
}

func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.statusMu.Lock()
	m.requestsByStatus[statusCode]++
	m.statusMu.Unlock()
}

// PercentileResponseTime returns the given percentile over the sample window.
func (m *Metrics) PercentileResponseTime(percentile float64) time.Duration {
	m.responseTimesMu.RLock()
	defer m.responseTimesMu.RUnlock()

	if len(m.responseTimes) == 0 {
		return 0
	}

	times := make([]time.Duration, len(m.responseTimes))
	copy(times, m.responseTimes)
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	index := int(float64(len(times)-1) * percentile / 100.0)
	if index >= len(times) {
		index = len(times) - 1
	}
	return times[index]
}

// StatusCodeDistribution returns a copy of per-status request counts.
func (m *Metrics) StatusCodeDistribution() map[int]int64 {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()

	out := make(map[int]int64, len(m.requestsByStatus))
	for code, count := range m.requestsByStatus {
		out[code] = count
	}
	return out
}

// GetStats assembles the /metrics payload.
func (m *Metrics) GetStats() map[string]interface{} {
	requests := atomic.LoadInt64(&m.RequestCount)
	errs := atomic.LoadInt64(&m.ErrorCount)
	cacheHits := atomic.LoadInt64(&m.CacheHits)
	cacheMisses := atomic.LoadInt64(&m.CacheMisses)
	sentimentCalls := atomic.LoadInt64(&m.SentimentCalls)
	sentimentErrors := atomic.LoadInt64(&m.SentimentErrors)

	errorRate := float64(0)
	if requests > 0 {
		errorRate = float64(errs) / float64(requests) * 100
	}
	cacheHitRate := float64(0)
	if total := cacheHits + cacheMisses; total > 0 {
		cacheHitRate = float64(cacheHits) / float64(total) * 100
	}

	return map[string]interface{}{
		"uptime_seconds":           time.Since(m.StartTime).Seconds(),
		"total_requests":           requests,
		"error_count":              errs,
		"error_rate_percent":       errorRate,
		"evaluations":              atomic.LoadInt64(&m.EvaluationCount),
		"cache_hits":               cacheHits,
		"cache_misses":             cacheMisses,
		"cache_hit_rate_percent":   cacheHitRate,
		"sentiment_calls":          sentimentCalls,
		"sentiment_errors":         sentimentErrors,
		"rate_limit_blocks":        atomic.LoadInt64(&m.RateLimitBlocks),
		"p50_response_time_ms":     float64(m.PercentileResponseTime(50)) / 1e6,
		"p95_response_time_ms":     float64(m.PercentileResponseTime(95)) / 1e6,
		"p99_response_time_ms":     float64(m.PercentileResponseTime(99)) / 1e6,
		"status_code_distribution": m.StatusCodeDistribution(),
		"start_time":               m.StartTime.Format(time.RFC3339),
	}
}

// Reset clears all counters. Used by tests.
func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.RequestCount, 0)
	atomic.StoreInt64(&m.ErrorCount, 0)
	atomic.StoreInt64(&m.CacheHits, 0)
	atomic.StoreInt64(&m.CacheMisses, 0)
	atomic.StoreInt64(&m.EvaluationCount, 0)
	atomic.StoreInt64(&m.SentimentCalls, 0)
	atomic.StoreInt64(&m.SentimentErrors, 0)
	atomic.StoreInt64(&m.RateLimitBlocks, 0)

	m.responseTimesMu.Lock()
	m.responseTimes = m.responseTimes[:0]
	m.responseTimesMu.Unlock()

	m.statusMu.Lock()
	m.requestsByStatus = make(map[int]int64)
	m.statusMu.Unlock()

	m.StartTime = time.Now()
}
