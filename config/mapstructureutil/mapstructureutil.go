// Package mapstructureutil contains decode hooks for domain types that appear in config files.
package mapstructureutil

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/peocoin/go-peocoin/common/types"
)

// AddressDecodeFunc validates addresses given as strings.
func AddressDecodeFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(types.Address("")) {
			return data, nil
		}
		addr, err := types.ParseAddress(data.(string))
		if err != nil {
			return nil, err
		}
		return addr, nil
	}
}

// BigIntDecodeFunc decodes token amounts.
// Strings are parsed with types.ParseAmount, so both "1000" base units and "1.5tok" are accepted.
func BigIntDecodeFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(big.Int{}) && t != reflect.TypeOf(&big.Int{}) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return types.ParseAmount(v)
		case int:
			return nonNegative(int64(v))
		case int32:
			return nonNegative(int64(v))
		case int64:
			return nonNegative(v)
		case uint:
			return new(big.Int).SetUint64(uint64(v)), nil
		case uint32:
			return new(big.Int).SetUint64(uint64(v)), nil
		case uint64:
			return new(big.Int).SetUint64(v), nil
		case float64:
			if v != math.Trunc(v) || v < 0 || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %v", types.ErrMalformedAmount, v)
			}
			r, _ := big.NewFloat(v).Int(nil)
			return r, nil
		}
		return data, nil
	}
}

func nonNegative(v int64) (*big.Int, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: negative %d", types.ErrMalformedAmount, v)
	}
	return big.NewInt(v), nil
}
