package vanilla

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of decimals every reported price and Greek carries.
const DisplayPrecision = 4

// Round rounds x half-to-even at DisplayPrecision decimals, deciding on the
// exact binary value of x rather than its shortest decimal form. Non-finite
// values are returned unchanged.
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, _ := exactDecimal(x).RoundBank(DisplayPrecision).Float64()
	return v
}

// exactDecimal expands x = m·2^e into m·5^(-e)·10^e, which is exact.
func exactDecimal(x float64) decimal.Decimal {
	frac, exp := math.Frexp(x)
	mant := big.NewInt(int64(math.Ldexp(frac, 53)))
	exp -= 53

	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow5), int32(exp))
}
