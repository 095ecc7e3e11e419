package vanilla

import "math"

// Greek names, in report order.
const (
	GreekDelta = "Delta"
	GreekGamma = "Gamma"
	GreekVega  = "Vega"
	GreekTheta = "Theta"
	GreekRho   = "Rho"
)

// Unit labels shown next to each Greek. Theta's label says "per day" while
// the value is the per-year analytic theta; see Greeks.ThetaPerDay.
const (
	UnitsPerDollar    = "per $1 change"
	UnitsPerVolPoint  = "per 1% volatility"
	UnitsPerDay       = "per day"
	UnitsPerRatePoint = "per 1% rate change"
)

const DaysPerYear = 365.0

// Greeks holds the five first/second order sensitivities, unrounded.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// ThetaPerDay scales the per-year theta to calendar days.
func (g Greeks) ThetaPerDay() float64 {
	return g.Theta / DaysPerYear
}

// GreekRow is one line of a GreeksReport.
type GreekRow struct {
	Greek  string
	Symbol string
	Value  float64
	Units  string
}

// GreeksReport always has five rows ordered Delta, Gamma, Vega, Theta, Rho.
type GreeksReport []GreekRow

// Value looks up a row by Greek name.
func (r GreeksReport) Value(greek string) (float64, bool) {
	for _, row := range r {
		if row.Greek == greek {
			return row.Value, true
		}
	}
	return 0, false
}

// analytic checks the preconditions shared by every closed-form Greek.
func analytic(c OptionContract, quantity string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Expiry == 0 || c.Volatility == 0 {
		return &SingularityError{Quantity: quantity, Expiry: c.Expiry, Volatility: c.Volatility}
	}
	return nil
}

// Delta is ∂V/∂S: Φ(d1) for a call, -Φ(-d1) for a put.
func Delta(c OptionContract) (float64, error) {
	if err := analytic(c, "delta"); err != nil {
		return 0, err
	}
	d1 := D1(c)
	if c.Type == Call {
		return normCDF(d1), nil
	}
	return -normCDF(-d1), nil
}

// Gamma is ∂²V/∂S², identical for calls and puts.
func Gamma(c OptionContract) (float64, error) {
	if err := analytic(c, "gamma"); err != nil {
		return 0, err
	}
	return normPDF(D1(c)) / (c.Spot * c.Volatility * math.Sqrt(c.Expiry)), nil
}

// Vega is ∂V/∂σ, identical for calls and puts.
func Vega(c OptionContract) (float64, error) {
	if err := analytic(c, "vega"); err != nil {
		return 0, err
	}
	return c.Spot * normPDF(D1(c)) * math.Sqrt(c.Expiry), nil
}

// Theta is the per-year time decay.
func Theta(c OptionContract) (float64, error) {
	if err := analytic(c, "theta"); err != nil {
		return 0, err
	}
	d1 := D1(c)
	d2 := D2(c)
	decay := -(c.Spot * normPDF(d1) * c.Volatility) / (2 * math.Sqrt(c.Expiry))
	carry := c.Rate * c.Strike * math.Exp(-c.Rate*c.Expiry)
	if c.Type == Call {
		return decay - carry*normCDF(d2), nil
	}
	return decay + carry*normCDF(-d2), nil
}

// Rho is ∂V/∂r.
func Rho(c OptionContract) (float64, error) {
	if err := analytic(c, "rho"); err != nil {
		return 0, err
	}
	d2 := D2(c)
	pv := c.Strike * c.Expiry * math.Exp(-c.Rate*c.Expiry)
	if c.Type == Call {
		return pv * normCDF(d2), nil
	}
	return -pv * normCDF(-d2), nil
}

// CalculateGreeks evaluates all five Greeks, each from its own d1/d2.
func CalculateGreeks(c OptionContract) (Greeks, error) {
	var (
		g   Greeks
		err error
	)
	if g.Delta, err = Delta(c); err != nil {
		return Greeks{}, err
	}
	if g.Gamma, err = Gamma(c); err != nil {
		return Greeks{}, err
	}
	if g.Vega, err = Vega(c); err != nil {
		return Greeks{}, err
	}
	if g.Theta, err = Theta(c); err != nil {
		return Greeks{}, err
	}
	if g.Rho, err = Rho(c); err != nil {
		return Greeks{}, err
	}
	return g, nil
}

// ComputeGreeks builds the fixed five-row report with values rounded to
// DisplayPrecision.
func ComputeGreeks(c OptionContract) (GreeksReport, error) {
	g, err := CalculateGreeks(c)
	if err != nil {
		return nil, err
	}
	return GreeksReport{
		{Greek: GreekDelta, Symbol: "Δ", Value: Round(g.Delta), Units: UnitsPerDollar},
		{Greek: GreekGamma, Symbol: "Γ", Value: Round(g.Gamma), Units: UnitsPerDollar},
		{Greek: GreekVega, Symbol: "ν", Value: Round(g.Vega), Units: UnitsPerVolPoint},
		{Greek: GreekTheta, Symbol: "Θ", Value: Round(g.Theta), Units: UnitsPerDay},
		{Greek: GreekRho, Symbol: "ρ", Value: Round(g.Rho), Units: UnitsPerRatePoint},
	}, nil
}
