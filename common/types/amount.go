package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Decimals is the number of decimal places of one token.
const Decimals = 18

var one = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// ErrMalformedAmount is returned when a token amount can't be parsed.
var ErrMalformedAmount = NewError(ErrInvalidAmount, "malformed amount")

// Units returns n whole tokens expressed in base units.
func Units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), one)
}

// OneToken returns a copy of the number of base units in one token.
func OneToken() *big.Int {
	return new(big.Int).Set(one)
}

// ParseAmount parses a token amount.
//
// Plain integers ("1000") are base units. Values with a token suffix ("1.5tok", "2tok")
// are converted to base units and must be representable without fraction.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	tokens := strings.HasSuffix(s, "tok")
	if tokens {
		s = strings.TrimSpace(strings.TrimSuffix(s, "tok"))
	}
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedAmount)
	}
	if !tokens {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
		}
		if v.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative %s", ErrMalformedAmount, s)
		}
		return v, nil
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative %s", ErrMalformedAmount, s)
	}
	r.Mul(r, new(big.Rat).SetInt(one))
	if !r.IsInt() {
		return nil, fmt.Errorf("%w: %s has more than %d decimals", ErrMalformedAmount, s, Decimals)
	}
	return new(big.Int).Set(r.Num()), nil
}

// FormatAmount renders base units as a decimal number of tokens.
func FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	q, r := new(big.Int).QuoRem(v, one, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := new(big.Int).Abs(r).String()
	frac = strings.TrimRight(strings.Repeat("0", Decimals-len(frac))+frac, "0")
	if v.Sign() < 0 && q.Sign() == 0 {
		return "-0." + frac
	}
	return q.String() + "." + frac
}

// TokenFloat converts base units into an approximate number of tokens, for metrics.
func TokenFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Rat).SetFrac(v, one).Float64()
	return f
}

// Positive returns true if v is not nil and greater than zero.
func Positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
