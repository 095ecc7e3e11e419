package vanilla

import (
	"math"
	"strings"
)

// OptionType is the closed set of exercise payoffs the pricer supports.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ParseOptionType accepts "call"/"put" (any case) and the single-letter
// forms "c"/"p".
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return "", &DomainInputError{Field: "option_type", Value: s, Reason: "must be call or put"}
}

// Valid reports whether t is Call or Put.
func (t OptionType) Valid() bool {
	return t == Call || t == Put
}

func (t OptionType) String() string { return string(t) }

// OptionContract is a single European vanilla option and its market inputs.
type OptionContract struct {
	Spot       float64 // S
	Strike     float64 // K
	Expiry     float64 // T, years
	Rate       float64 // r, continuously compounded
	Volatility float64 // σ, annualised
	Type       OptionType
}

// Validate rejects contracts the model cannot price. T=0 and σ=0 are valid
// here; they are handled by the pricer and the Greeks separately.
func (c OptionContract) Validate() error {
	switch {
	case !finite(c.Spot) || c.Spot <= 0:
		return &DomainInputError{Field: "spot", Value: c.Spot, Reason: "must be positive"}
	case !finite(c.Strike) || c.Strike <= 0:
		return &DomainInputError{Field: "strike", Value: c.Strike, Reason: "must be positive"}
	case !finite(c.Expiry) || c.Expiry < 0:
		return &DomainInputError{Field: "expiry", Value: c.Expiry, Reason: "must be zero or positive"}
	case !finite(c.Rate):
		return &DomainInputError{Field: "rate", Value: c.Rate, Reason: "must be finite"}
	case !finite(c.Volatility) || c.Volatility < 0:
		return &DomainInputError{Field: "volatility", Value: c.Volatility, Reason: "must be zero or positive"}
	case !c.Type.Valid():
		return &DomainInputError{Field: "option_type", Value: string(c.Type), Reason: "must be call or put"}
	}
	return nil
}

func (c OptionContract) WithSpot(s float64) OptionContract {
	c.Spot = s
	return c
}

func (c OptionContract) WithExpiry(t float64) OptionContract {
	c.Expiry = t
	return c
}

func (c OptionContract) WithRate(r float64) OptionContract {
	c.Rate = r
	return c
}

func (c OptionContract) WithVolatility(v float64) OptionContract {
	c.Volatility = v
	return c
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
