package vanilla

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	SweepSamples        = 100
	SmileSamples        = 30
	DefaultSmileBaseVol = 0.2
)

// Point is one (x, y) sample of a curve.
type Point struct {
	X float64
	Y float64
}

// SweepCurve is a series produced by varying one input of a base contract.
type SweepCurve struct {
	Name   string
	XLabel string
	YLabel string
	Points []Point
}

func (c SweepCurve) Len() int { return len(c.Points) }

func (c SweepCurve) Xs() []float64 {
	xs := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = p.X
	}
	return xs
}

func (c SweepCurve) Ys() []float64 {
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		ys[i] = p.Y
	}
	return ys
}

// Linspace returns n evenly spaced values from lo to hi, both inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = lo
		return xs
	}
	return floats.Span(xs, lo, hi)
}

type sweepPlan struct {
	name   string
	xLabel string
	yLabel string
	lo, hi float64
	n      int
	vary   func(OptionContract, float64) OptionContract
	eval   func(OptionContract) (float64, error)
}

func (e *Engine) sweep(ctx context.Context, base OptionContract, s sweepPlan) (SweepCurve, error) {
	if err := base.Validate(); err != nil {
		return SweepCurve{}, err
	}

	xs := Linspace(s.lo, s.hi, s.n)
	ys, err := e.Evaluate(ctx, xs, func(x float64) (float64, error) {
		return s.eval(s.vary(base, x))
	})
	if err != nil {
		return SweepCurve{}, fmt.Errorf("%s sweep: %w", s.name, err)
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return SweepCurve{Name: s.name, XLabel: s.xLabel, YLabel: s.yLabel, Points: points}, nil
}

// SpotSweep prices the contract for S in [0.5·S, 1.5·S].
func (e *Engine) SpotSweep(ctx context.Context, base OptionContract) (SweepCurve, error) {
	return e.sweep(ctx, base, sweepPlan{
		name: "spot", xLabel: "Stock Price", yLabel: "Option Price",
		lo: 0.5 * base.Spot, hi: 1.5 * base.Spot, n: SweepSamples,
		vary: OptionContract.WithSpot,
		eval: PriceContract,
	})
}

// DeltaSweep evaluates Delta for S in [0.5·S, 1.5·S].
func (e *Engine) DeltaSweep(ctx context.Context, base OptionContract) (SweepCurve, error) {
	return e.sweep(ctx, base, sweepPlan{
		name: "delta", xLabel: "Stock Price", yLabel: "Delta",
		lo: 0.5 * base.Spot, hi: 1.5 * base.Spot, n: SweepSamples,
		vary: OptionContract.WithSpot,
		eval: Delta,
	})
}

// VolatilitySweep prices the contract for σ in [0.5·σ, 5·σ].
func (e *Engine) VolatilitySweep(ctx context.Context, base OptionContract) (SweepCurve, error) {
	return e.sweep(ctx, base, sweepPlan{
		name: "volatility", xLabel: "Volatility", yLabel: "Option Price",
		lo: 0.5 * base.Volatility, hi: 5 * base.Volatility, n: SweepSamples,
		vary: OptionContract.WithVolatility,
		eval: PriceContract,
	})
}

// TimeSweep prices the contract for T in [0.5·T, 1.5·T], or [0, 1] for an
// expired base contract.
func (e *Engine) TimeSweep(ctx context.Context, base OptionContract) (SweepCurve, error) {
	lo, hi := 0.5*base.Expiry, 1.5*base.Expiry
	if base.Expiry == 0 {
		lo, hi = 0, 1
	}
	return e.sweep(ctx, base, sweepPlan{
		name: "time", xLabel: "Time to Maturity (years)", yLabel: "Option Price",
		lo: lo, hi: hi, n: SweepSamples,
		vary: OptionContract.WithExpiry,
		eval: PriceContract,
	})
}

// RateSweep prices the contract for r in [0.5·r, 1.5·r].
func (e *Engine) RateSweep(ctx context.Context, base OptionContract) (SweepCurve, error) {
	return e.sweep(ctx, base, sweepPlan{
		name: "rate", xLabel: "Interest Rate", yLabel: "Option Price",
		lo: 0.5 * base.Rate, hi: 1.5 * base.Rate, n: SweepSamples,
		vary: OptionContract.WithRate,
		eval: PriceContract,
	})
}

// VolSmile is a stylised smile, σ(K) = baseVol + 0.05·|K-center|/center for
// K in [0.8·center, 1.2·center]. It is illustrative only and never calls
// the pricer.
func VolSmile(center, baseVol float64) (SweepCurve, error) {
	if !finite(center) || center <= 0 {
		return SweepCurve{}, &DomainInputError{Field: "center", Value: center, Reason: "must be positive"}
	}
	if !finite(baseVol) || baseVol < 0 {
		return SweepCurve{}, &DomainInputError{Field: "base_vol", Value: baseVol, Reason: "must be zero or positive"}
	}

	strikes := Linspace(0.8*center, 1.2*center, SmileSamples)
	points := make([]Point, len(strikes))
	for i, k := range strikes {
		points[i] = Point{X: k, Y: baseVol + 0.05*math.Abs((k-center)/center)}
	}
	return SweepCurve{Name: "smile", XLabel: "Strike Price", YLabel: "Implied Volatility", Points: points}, nil
}

// SweepFunc is the shape of the Engine's sweep methods.
type SweepFunc func(*Engine, context.Context, OptionContract) (SweepCurve, error)

// SweepKinds lists the named sweeps in the order they are usually shown.
var SweepKinds = []string{"spot", "delta", "volatility", "time", "rate"}

var sweepsByKind = map[string]SweepFunc{
	"spot":       (*Engine).SpotSweep,
	"delta":      (*Engine).DeltaSweep,
	"volatility": (*Engine).VolatilitySweep,
	"time":       (*Engine).TimeSweep,
	"rate":       (*Engine).RateSweep,
}

// LookupSweep returns the sweep named kind.
func LookupSweep(kind string) (SweepFunc, bool) {
	fn, ok := sweepsByKind[kind]
	return fn, ok
}

// Package-level sweeps run on DefaultEngine.

func SpotSweep(base OptionContract) (SweepCurve, error) {
	return DefaultEngine.SpotSweep(context.Background(), base)
}

func DeltaSweep(base OptionContract) (SweepCurve, error) {
	return DefaultEngine.DeltaSweep(context.Background(), base)
}

func VolatilitySweep(base OptionContract) (SweepCurve, error) {
	return DefaultEngine.VolatilitySweep(context.Background(), base)
}

func TimeSweep(base OptionContract) (SweepCurve, error) {
	return DefaultEngine.TimeSweep(context.Background(), base)
}

func RateSweep(base OptionContract) (SweepCurve, error) {
	return DefaultEngine.RateSweep(context.Background(), base)
}
