package ballots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/statesql"
)

func TestBallots(t *testing.T) {
	db := statesql.InMemory()
	cast := time.Unix(1_700_000_000, 0).UTC()

	yes := &types.Ballot{Proposal: 0, Voter: "alice", Support: true, Weight: types.Units(10), CastAt: cast}
	no := &types.Ballot{Proposal: 0, Voter: "bob", Support: false, Weight: types.Units(4), CastAt: cast.Add(time.Second)}
	other := &types.Ballot{Proposal: 1, Voter: "alice", Support: false, Weight: types.Units(10), CastAt: cast}

	require.NoError(t, Add(db, yes))
	require.NoError(t, Add(db, no))
	require.NoError(t, Add(db, other))
	require.ErrorIs(t, Add(db, yes), sql.ErrObjectExists)

	voted, err := Has(db, 0, "alice")
	require.NoError(t, err)
	require.True(t, voted)
	voted, err = Has(db, 2, "alice")
	require.NoError(t, err)
	require.False(t, voted)

	got, err := ForProposal(db, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, types.Address("alice"), got[0].Voter)
	require.True(t, got[0].Support)
	require.Zero(t, types.Units(10).Cmp(got[0].Weight))
	require.Equal(t, types.Address("bob"), got[1].Voter)
	require.False(t, got[1].Support)
	require.True(t, no.CastAt.Equal(got[1].CastAt))

	got, err = ForProposal(db, 3)
	require.NoError(t, err)
	require.Empty(t, got)
}
