package types_test

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		desc   string
		input  string
		expect *big.Int
		err    error
	}{
		{desc: "base units", input: "1000", expect: big.NewInt(1000)},
		{desc: "underscores", input: "1_000", expect: big.NewInt(1000)},
		{desc: "whole tokens", input: "200tok", expect: types.Units(200)},
		{desc: "fraction", input: "1.5tok", expect: new(big.Int).Div(types.Units(3), big.NewInt(2))},
		{desc: "zero", input: "0", expect: big.NewInt(0)},
		{desc: "empty", input: " ", err: types.ErrMalformedAmount},
		{desc: "negative", input: "-1", err: types.ErrMalformedAmount},
		{desc: "negative tokens", input: "-1tok", err: types.ErrMalformedAmount},
		{desc: "garbage", input: "1e", err: types.ErrMalformedAmount},
		{desc: "too precise", input: "0.0000000000000000001tok", err: types.ErrMalformedAmount},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			v, err := types.ParseAmount(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, types.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Zero(t, tc.expect.Cmp(v), "expected %s got %s", tc.expect, v)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()
	require.Equal(t, "0", types.FormatAmount(nil))
	require.Equal(t, "200", types.FormatAmount(types.Units(200)))
	require.Equal(t, "0.000000000000000001", types.FormatAmount(big.NewInt(1)))

	half := new(big.Int).Div(types.Units(3), big.NewInt(2))
	require.Equal(t, "1.5", types.FormatAmount(half))
	parsed, err := types.ParseAmount(types.FormatAmount(half) + "tok")
	require.NoError(t, err)
	require.Zero(t, half.Cmp(parsed))
}

func TestTokenFloat(t *testing.T) {
	t.Parallel()
	require.InDelta(t, 200.0, types.TokenFloat(types.Units(200)), 1e-9)
	require.Zero(t, types.TokenFloat(nil))
}

func TestClassError(t *testing.T) {
	t.Parallel()
	errLocked := types.NewError(types.ErrTemporalViolation, "locked")
	wrapped := fmt.Errorf("unstake: %w", errLocked)

	require.ErrorIs(t, wrapped, errLocked)
	require.ErrorIs(t, wrapped, types.ErrTemporalViolation)
	require.NotErrorIs(t, wrapped, types.ErrAlreadyDone)
	require.Equal(t, types.ErrTemporalViolation, types.ClassOf(wrapped))
	require.Nil(t, types.ClassOf(errors.New("plain")))
	require.Equal(t, "unstake: locked", wrapped.Error())
}

func TestParseAddress(t *testing.T) {
	t.Parallel()
	addr, err := types.ParseAddress(" alice ")
	require.NoError(t, err)
	require.Equal(t, types.Address("alice"), addr)

	_, err = types.ParseAddress("")
	require.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = types.ParseAddress("al ice")
	require.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = types.ParseAddress("0x" + string(make([]byte, types.MaxAddressLength)))
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}
