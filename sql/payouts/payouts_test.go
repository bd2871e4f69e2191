package payouts

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/statesql"
)

func TestAdd(t *testing.T) {
	db := statesql.InMemory()
	start := time.Unix(1_700_000_000, 0).UTC()

	payouts := []*types.Payout{
		{
			Participant: "alice",
			Principal:   types.Units(100),
			Reward:      big.NewInt(1_000),
			StakedAt:    start,
			PaidAt:      start.Add(30 * 24 * time.Hour),
		},
		{
			Participant: "bob",
			Principal:   types.Units(5),
			Reward:      big.NewInt(7),
			StakedAt:    start,
			PaidAt:      start.Add(31 * 24 * time.Hour),
		},
		{
			Participant: "alice",
			Principal:   types.Units(200),
			Reward:      big.NewInt(2_000),
			StakedAt:    start.Add(40 * 24 * time.Hour),
			PaidAt:      start.Add(90 * 24 * time.Hour),
		},
	}
	for _, p := range payouts {
		require.NoError(t, Add(db, p))
	}

	total, err := Total(db, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(3_000), total.Int64())

	total, err = Total(db, "carol")
	require.NoError(t, err)
	require.Zero(t, total.Sign())

	got, err := FilterByAddress(db, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Zero(t, types.Units(100).Cmp(got[0].Principal))
	require.True(t, payouts[2].PaidAt.Equal(got[1].PaidAt))
	require.True(t, payouts[2].StakedAt.Equal(got[1].StakedAt))

	all, err := All(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, types.Address("bob"), all[1].Participant)
}

func TestDelete(t *testing.T) {
	db := statesql.InMemory()
	paid := time.Unix(1_700_000_000, 0).UTC()
	p := &types.Payout{
		Participant: "alice",
		Principal:   types.Units(1),
		Reward:      big.NewInt(3),
		StakedAt:    paid.Add(-time.Hour),
		PaidAt:      paid,
	}
	require.NoError(t, Add(db, p))
	require.ErrorIs(t, Delete(db, "alice", paid.Add(time.Second)), sql.ErrNotFound)
	require.ErrorIs(t, Delete(db, "bob", paid), sql.ErrNotFound)

	require.NoError(t, Delete(db, "alice", paid))
	got, err := FilterByAddress(db, "alice")
	require.NoError(t, err)
	require.Empty(t, got)
	require.ErrorIs(t, Delete(db, "alice", paid), sql.ErrNotFound)
}
