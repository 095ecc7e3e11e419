package vanilla

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainInput marks inputs outside the model's domain (S<=0, K<=0, T<0, σ<0, bad type).
	ErrDomainInput = errors.New("invalid option input")

	// ErrSingularity marks a closed-form evaluation at T=0 or σ=0.
	ErrSingularity = errors.New("black-scholes singularity")
)

// DomainInputError reports which field of a contract was rejected.
type DomainInputError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *DomainInputError) Error() string {
	return fmt.Sprintf("%v: %s=%v %s", ErrDomainInput, e.Field, e.Value, e.Reason)
}

func (e *DomainInputError) Unwrap() error { return ErrDomainInput }

// SingularityError is returned instead of a non-finite value when a quantity
// would divide by σ√T.
type SingularityError struct {
	Quantity   string
	Expiry     float64
	Volatility float64
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%v: %s undefined at T=%g, sigma=%g", ErrSingularity, e.Quantity, e.Expiry, e.Volatility)
}

func (e *SingularityError) Unwrap() error { return ErrSingularity }
