package vanilla

import "math"

// D1 is the first Black-Scholes auxiliary term. Callers must ensure T>0 and σ>0.
func D1(c OptionContract) float64 {
	return (math.Log(c.Spot/c.Strike) + (c.Rate+0.5*c.Volatility*c.Volatility)*c.Expiry) /
		(c.Volatility * math.Sqrt(c.Expiry))
}

// D2 is D1 - σ√T.
func D2(c OptionContract) float64 {
	return D1(c) - c.Volatility*math.Sqrt(c.Expiry)
}

// Price returns the Black-Scholes fair value rounded to DisplayPrecision.
//
// At T=0 or σ=0 the closed form is not evaluated and the intrinsic value
// max(S-K,0) or max(K-S,0) is returned, whatever r is.
func Price(spot, strike, expiry, rate, volatility float64, optionType OptionType) (float64, error) {
	return PriceContract(OptionContract{
		Spot:       spot,
		Strike:     strike,
		Expiry:     expiry,
		Rate:       rate,
		Volatility: volatility,
		Type:       optionType,
	})
}

// PriceContract is Price for an OptionContract.
func PriceContract(c OptionContract) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return Round(theoreticalValue(c)), nil
}

// Intrinsic is the exercise-now payoff max(S-K,0) or max(K-S,0).
func Intrinsic(spot, strike float64, optionType OptionType) float64 {
	if optionType == Call {
		return math.Max(spot-strike, 0)
	}
	return math.Max(strike-spot, 0)
}

// theoreticalValue assumes c is valid.
func theoreticalValue(c OptionContract) float64 {
	if c.Expiry == 0 || c.Volatility == 0 {
		return Intrinsic(c.Spot, c.Strike, c.Type)
	}

	discount := math.Exp(-c.Rate * c.Expiry)

	d1 := D1(c)
	d2 := d1 - c.Volatility*math.Sqrt(c.Expiry)
	if c.Type == Call {
		return c.Spot*normCDF(d1) - c.Strike*discount*normCDF(d2)
	}
	return c.Strike*discount*normCDF(-d2) - c.Spot*normCDF(-d1)
}
