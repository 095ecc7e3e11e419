package services

import (
	"context"
	"sync"
	"time"

	"github.com/jwaldner/vanilla/internal/logger"
	vanilla "github.com/jwaldner/vanilla/vanilla_lib"
)

const slowCall = 250 * time.Millisecond

// PerformanceWrapper wraps the engine with call timing
type PerformanceWrapper struct {
	engine *vanilla.Engine

	mu            sync.Mutex
	totalRequests int64
	totalDuration time.Duration
	slowCount     int64
}

// PerformanceStats is a snapshot of the wrapper's counters
type PerformanceStats struct {
	TotalRequests int64   `json:"total_requests"`
	AverageMs     float64 `json:"average_ms"`
	SlowRequests  int64   `json:"slow_requests"`
	ExecutionMode string  `json:"execution_mode"`
	Workers       int     `json:"workers"`
}

// NewPerformanceWrapper creates a wrapper around an engine
func NewPerformanceWrapper(engine *vanilla.Engine) *PerformanceWrapper {
	return &PerformanceWrapper{engine: engine}
}

func (pw *PerformanceWrapper) Engine() *vanilla.Engine { return pw.engine }

// Sweep runs one of the engine's sweep methods with timing
func (pw *PerformanceWrapper) Sweep(ctx context.Context, name string, base vanilla.OptionContract,
	sweep vanilla.SweepFunc) (vanilla.SweepCurve, error) {
	start := time.Now()
	curve, err := sweep(pw.engine, ctx, base)
	pw.record("Sweep("+name+")", time.Since(start))
	return curve, err
}

// CalculateBlackScholes wraps the batch call with timing
func (pw *PerformanceWrapper) CalculateBlackScholes(ctx context.Context, contracts []vanilla.OptionContract) ([]vanilla.Valuation, time.Duration, error) {
	start := time.Now()
	results, err := pw.engine.CalculateBlackScholes(ctx, contracts)
	duration := time.Since(start)
	pw.record("CalculateBlackScholes", duration)
	return results, duration, err
}

func (pw *PerformanceWrapper) record(call string, duration time.Duration) {
	pw.mu.Lock()
	pw.totalRequests++
	pw.totalDuration += duration
	if duration > slowCall {
		pw.slowCount++
	}
	pw.mu.Unlock()

	logger.Debug.Printf("⚡ ENGINE CALL: %s took %v", call, duration)
	if duration > slowCall {
		logger.Warn.Printf("⚠️  SLOW ENGINE CALL: %s took %v", call, duration)
	}
}

// Stats returns the counters accumulated so far
func (pw *PerformanceWrapper) Stats() PerformanceStats {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	stats := PerformanceStats{
		TotalRequests: pw.totalRequests,
		SlowRequests:  pw.slowCount,
		ExecutionMode: string(pw.engine.ExecutionMode()),
		Workers:       pw.engine.Workers(),
	}
	if pw.totalRequests > 0 {
		stats.AverageMs = float64(pw.totalDuration.Microseconds()) / 1000 / float64(pw.totalRequests)
	}
	return stats
}
