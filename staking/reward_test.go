package staking

import (
	"math/big"
	"testing"
	"time"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
)

const day = 24 * time.Hour

func TestRate(t *testing.T) {
	cfg := DefaultConfig()
	for _, tc := range []struct {
		desc      string
		principal *big.Int
		elapsed   time.Duration
		expected  uint64
	}{
		{"base", types.Units(100), day, 500},
		{"amount tier", types.Units(1000), day, 800},
		{"duration tier", types.Units(1), 90 * day, 1000},
		{"just below duration", types.Units(1), 90*day - time.Second, 500},
		{"amount and duration", types.Units(1000), 180 * day, 1200},
		{"amount with short duration", types.Units(5000), 100 * day, 1000},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, cfg.Rate(tc.principal, tc.elapsed))
		})
	}
}

func TestReward(t *testing.T) {
	cfg := DefaultConfig()
	for _, tc := range []struct {
		desc      string
		principal *big.Int
		elapsed   time.Duration
		expected  string
	}{
		{"zero elapsed", types.Units(200), 0, "0"},
		{"negative elapsed", types.Units(200), -time.Hour, "0"},
		{"fraction of a second", types.Units(200), 999 * time.Millisecond, "0"},
		{"zero principal", new(big.Int), 90 * day, "0"},
		{"lock period at base rate", types.Units(100), 7 * day, "95890410958904109"},
		{"after lock at base rate", types.Units(100), 8 * day, "109589041095890410"},
		{"duration tier", types.Units(200), 90 * day, "4931506849315068493"},
		{"amount tier", types.Units(2000), day, "438356164383561643"},
		{"top tier", types.Units(2000), 180 * day, "118356164383561643835"},
		{"truncated to zero", big.NewInt(1), time.Second, "0"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.expected, cfg.Reward(tc.principal, tc.elapsed).String())
		})
	}
}

func TestRewardNonDecreasing(t *testing.T) {
	cfg := DefaultConfig()
	f := fuzz.NewWithSeed(1001)
	for range 1000 {
		var (
			tokens uint32
			first  uint32
			extra  uint32
		)
		f.Fuzz(&tokens)
		f.Fuzz(&first)
		f.Fuzz(&extra)
		principal := new(big.Int).Mul(big.NewInt(int64(tokens)), types.OneToken())
		earlier := time.Duration(first) * time.Second
		later := earlier + time.Duration(extra)*time.Second

		r1 := cfg.Reward(principal, earlier)
		r2 := cfg.Reward(principal, later)
		require.LessOrEqual(t, r1.Cmp(r2), 0, "principal %s: %v -> %s, %v -> %s",
			principal, earlier, r1, later, r2)
		require.GreaterOrEqual(t, r1.Sign(), 0)
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Custody = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LockPeriod = -time.Second
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Tiers = append(cfg.Tiers, Tier{MinAmount: big.NewInt(-1)})
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.BaseRateBps = MaxRateBps + 1
	require.Error(t, cfg.Validate())
}
