package vanilla

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ExecutionMode defines how sample evaluations are scheduled
type ExecutionMode string

const (
	ExecutionModeAuto       ExecutionMode = "auto"
	ExecutionModeParallel   ExecutionMode = "parallel"
	ExecutionModeSequential ExecutionMode = "sequential"
)

// autoParallelMin is the smallest batch auto mode fans out.
const autoParallelMin = 64

// Engine evaluates batches of independent pricing calls. It holds no market
// state; its only fields are scheduling knobs.
type Engine struct {
	executionMode ExecutionMode
	workers       int
}

// Valuation is a priced contract with its Greeks, both rounded for display.
type Valuation struct {
	Contract         OptionContract
	TheoreticalPrice float64
	Greeks           Greeks
}

// DefaultEngine backs the package-level sweep functions.
var DefaultEngine = NewEngine()

// NewEngine creates an engine in auto mode using GOMAXPROCS workers
func NewEngine() *Engine {
	return &Engine{
		executionMode: ExecutionModeAuto,
		workers:       runtime.GOMAXPROCS(0),
	}
}

// NewEngineForced creates engine with forced execution mode
func NewEngineForced(mode string) *Engine {
	e := NewEngine()

	switch ExecutionMode(mode) {
	case ExecutionModeParallel:
		e.executionMode = ExecutionModeParallel
	case ExecutionModeSequential:
		e.executionMode = ExecutionModeSequential
	default:
		e.executionMode = ExecutionModeAuto
	}

	return e
}

// WithWorkers bounds the number of concurrent evaluations. n<1 is ignored.
func (e *Engine) WithWorkers(n int) *Engine {
	if n >= 1 {
		e.workers = n
	}
	return e
}

func (e *Engine) ExecutionMode() ExecutionMode { return e.executionMode }

func (e *Engine) Workers() int { return e.workers }

func (e *Engine) parallel(n int) bool {
	switch e.executionMode {
	case ExecutionModeParallel:
		return e.workers > 1
	case ExecutionModeSequential:
		return false
	default:
		return e.workers > 1 && n >= autoParallelMin
	}
}

// Evaluate applies fn to every x and returns results in input order. The
// first error cancels the remaining samples and is returned.
func (e *Engine) Evaluate(ctx context.Context, xs []float64, fn func(x float64) (float64, error)) ([]float64, error) {
	return evaluate(ctx, e, len(xs), func(i int) (float64, error) {
		y, err := fn(xs[i])
		if err != nil {
			return 0, fmt.Errorf("sample %d (x=%g): %w", i, xs[i], err)
		}
		return y, nil
	})
}

// CalculateBlackScholes prices every contract and computes its Greeks.
// Contracts at T=0 or σ=0 have no closed-form Greeks and fail the batch.
func (e *Engine) CalculateBlackScholes(ctx context.Context, contracts []OptionContract) ([]Valuation, error) {
	if len(contracts) == 0 {
		return nil, nil
	}

	return evaluate(ctx, e, len(contracts), func(i int) (Valuation, error) {
		c := contracts[i]
		price, err := PriceContract(c)
		if err != nil {
			return Valuation{}, fmt.Errorf("contract %d: %w", i, err)
		}
		g, err := CalculateGreeks(c)
		if err != nil {
			return Valuation{}, fmt.Errorf("contract %d: %w", i, err)
		}
		return Valuation{
			Contract:         c,
			TheoreticalPrice: price,
			Greeks: Greeks{
				Delta: Round(g.Delta),
				Gamma: Round(g.Gamma),
				Vega:  Round(g.Vega),
				Theta: Round(g.Theta),
				Rho:   Round(g.Rho),
			},
		}, nil
	})
}

func evaluate[T any](ctx context.Context, e *Engine, n int, fn func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)

	if !e.parallel(n) {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := fn(i)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn(i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
