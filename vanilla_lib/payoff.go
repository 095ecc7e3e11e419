package vanilla

// PayoffResult is the net P&L at expiry across spot, with the breakeven
// spot and the P&L at the current spot.
type PayoffResult struct {
	Curve      SweepCurve
	Breakeven  float64
	CurrentPnL float64
}

// NetPayoff is the expiry payoff at underlying less the premium paid.
func NetPayoff(underlying, strike, premium float64, optionType OptionType) float64 {
	return Intrinsic(underlying, strike, optionType) - premium
}

// PayoffCurve samples NetPayoff over [0.5·S, 1.5·S].
func PayoffCurve(spot, strike, premium float64, optionType OptionType) (PayoffResult, error) {
	switch {
	case !finite(spot) || spot <= 0:
		return PayoffResult{}, &DomainInputError{Field: "spot", Value: spot, Reason: "must be positive"}
	case !finite(strike) || strike <= 0:
		return PayoffResult{}, &DomainInputError{Field: "strike", Value: strike, Reason: "must be positive"}
	case !finite(premium) || premium < 0:
		return PayoffResult{}, &DomainInputError{Field: "premium", Value: premium, Reason: "must be zero or positive"}
	case !optionType.Valid():
		return PayoffResult{}, &DomainInputError{Field: "option_type", Value: string(optionType), Reason: "must be call or put"}
	}

	xs := Linspace(0.5*spot, 1.5*spot, SweepSamples)
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Y: NetPayoff(x, strike, premium, optionType)}
	}

	breakeven := strike + premium
	if optionType == Put {
		breakeven = strike - premium
	}

	return PayoffResult{
		Curve: SweepCurve{
			Name:   "payoff",
			XLabel: "Stock Price at Expiration",
			YLabel: "Profit / Loss",
			Points: points,
		},
		Breakeven:  breakeven,
		CurrentPnL: NetPayoff(spot, strike, premium, optionType),
	}, nil
}
