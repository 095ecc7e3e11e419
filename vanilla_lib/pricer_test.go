package vanilla

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atm(optionType OptionType) OptionContract {
	return OptionContract{Spot: 100, Strike: 100, Expiry: 1, Rate: 0.01, Volatility: 0.2, Type: optionType}
}

func TestPriceReferenceValues(t *testing.T) {
	tests := []struct {
		name     string
		contract OptionContract
		want     float64
	}{
		{"atm call r=1%", atm(Call), 8.4333},
		{"atm put r=1%", atm(Put), 7.4383},
		{"atm call r=5%", OptionContract{Spot: 100, Strike: 100, Expiry: 1, Rate: 0.05, Volatility: 0.2, Type: Call}, 10.4506},
		{"atm put r=5%", OptionContract{Spot: 100, Strike: 100, Expiry: 1, Rate: 0.05, Volatility: 0.2, Type: Put}, 5.5735},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceContract(tt.contract)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPriceMatchesPriceContract(t *testing.T) {
	c := atm(Put)
	a, err := Price(c.Spot, c.Strike, c.Expiry, c.Rate, c.Volatility, c.Type)
	require.NoError(t, err)
	b, err := PriceContract(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPutCallParity(t *testing.T) {
	for _, s := range []float64{60, 85, 100, 115, 180} {
		for _, k := range []float64{80, 100, 125} {
			for _, T := range []float64{0.05, 0.5, 2} {
				for _, r := range []float64{-0.01, 0, 0.03, 0.08} {
					for _, v := range []float64{0.05, 0.2, 0.6} {
						call, err := Price(s, k, T, r, v, Call)
						require.NoError(t, err)
						put, err := Price(s, k, T, r, v, Put)
						require.NoError(t, err)

						want := s - k*math.Exp(-r*T)
						assert.InDelta(t, want, call-put, 1e-3, "S=%v K=%v T=%v r=%v sigma=%v", s, k, T, r, v)
					}
				}
			}
		}
	}
}

func TestPriceAtExpiryIsIntrinsic(t *testing.T) {
	for _, r := range []float64{-0.02, 0, 0.05} {
		for _, v := range []float64{0, 0.2, 1.5} {
			call, err := Price(120, 100, 0, r, v, Call)
			require.NoError(t, err)
			assert.Equal(t, 20.0, call)

			call, err = Price(80, 100, 0, r, v, Call)
			require.NoError(t, err)
			assert.Equal(t, 0.0, call)

			put, err := Price(80, 100, 0, r, v, Put)
			require.NoError(t, err)
			assert.Equal(t, 20.0, put)

			put, err = Price(120, 100, 0, r, v, Put)
			require.NoError(t, err)
			assert.Equal(t, 0.0, put)
		}
	}
}

func TestPriceZeroVolatilityIsIntrinsic(t *testing.T) {
	for _, rate := range []float64{-0.01, 0, 0.05} {
		call, err := Price(100, 100, 1, rate, 0, Call)
		require.NoError(t, err)
		assert.Equal(t, 0.0, call, "r=%g", rate)

		call, err = Price(100, 90, 1, rate, 0, Call)
		require.NoError(t, err)
		assert.Equal(t, 10.0, call, "r=%g", rate)

		put, err := Price(100, 90, 1, rate, 0, Put)
		require.NoError(t, err)
		assert.Equal(t, 0.0, put, "r=%g", rate)
	}

	deep, err := Price(188.36, 425, 0.058362, 0.03983, 0, Put)
	require.NoError(t, err)
	assert.Equal(t, 236.64, deep)
	assert.False(t, math.IsNaN(deep))
}

func TestPriceMonotoneInSpot(t *testing.T) {
	prevCall, prevPut := -1.0, math.Inf(1)
	for s := 50.0; s <= 150; s += 2.5 {
		call, err := Price(s, 100, 0.75, 0.02, 0.3, Call)
		require.NoError(t, err)
		put, err := Price(s, 100, 0.75, 0.02, 0.3, Put)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, call, prevCall)
		assert.LessOrEqual(t, put, prevPut)
		prevCall, prevPut = call, put
	}
}

func TestPriceRejectsDomainErrors(t *testing.T) {
	tests := []struct {
		name  string
		c     OptionContract
		field string
	}{
		{"zero spot", OptionContract{Spot: 0, Strike: 100, Expiry: 1, Volatility: 0.2, Type: Call}, "spot"},
		{"negative strike", OptionContract{Spot: 100, Strike: -1, Expiry: 1, Volatility: 0.2, Type: Call}, "strike"},
		{"negative expiry", OptionContract{Spot: 100, Strike: 100, Expiry: -0.5, Volatility: 0.2, Type: Call}, "expiry"},
		{"negative vol", OptionContract{Spot: 100, Strike: 100, Expiry: 1, Volatility: -0.2, Type: Put}, "volatility"},
		{"nan rate", OptionContract{Spot: 100, Strike: 100, Expiry: 1, Rate: math.NaN(), Volatility: 0.2, Type: Put}, "rate"},
		{"bad type", OptionContract{Spot: 100, Strike: 100, Expiry: 1, Volatility: 0.2, Type: "straddle"}, "option_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceContract(tt.c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomainInput))

			var domainErr *DomainInputError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.field, domainErr.Field)
		})
	}
}

func TestParseOptionType(t *testing.T) {
	for in, want := range map[string]OptionType{"call": Call, "CALL": Call, " c ": Call, "put": Put, "P": Put} {
		got, err := ParseOptionType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseOptionType("butterfly")
	assert.ErrorIs(t, err, ErrDomainInput)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 8.4333, Round(8.433318690109608))
	assert.Equal(t, -4.4201, Round(-4.420077814548036))
	assert.Equal(t, 0.0, Round(0.00001))
	assert.True(t, math.IsInf(Round(math.Inf(1)), 1))
}

func TestRoundDecidesOnBinaryValue(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		// stored just above the tie
		{0.12345, 0.1235},
		{2.67505, 2.6751},
		{1.00005, 1.0001},
		// stored just below the tie
		{0.00015, 0.0001},
		// exact binary ties go to the even digit
		{0.03125, 0.0312},
		{0.09375, 0.0938},
		{-0.03125, -0.0312},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round(tc.in), "Round(%v)", tc.in)
	}
	assert.Equal(t, 0.0, Round(0))
	assert.Equal(t, 123456789.0, Round(123456789))
}

func TestPriceRoundsIntrinsicOnBinaryValue(t *testing.T) {
	price, err := Price(0.12345, 1e-300, 0, 0.01, 0.2, Call)
	require.NoError(t, err)
	assert.Equal(t, 0.1235, price)
}
