package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/statesql"
)

func TestWeights(t *testing.T) {
	db := statesql.InMemory()
	_, err := Weights(db)
	require.ErrorIs(t, err, sql.ErrNotFound)

	require.NoError(t, SetWeights(db, types.ScoreWeights{Token: 1, Stake: 1, Duration: 1}))
	require.NoError(t, SetWeights(db, types.ScoreWeights{Token: 2, Stake: 3, Duration: 1}))
	w, err := Weights(db)
	require.NoError(t, err)
	require.Equal(t, types.ScoreWeights{Token: 2, Stake: 3, Duration: 1}, w)
}

func TestGovernance(t *testing.T) {
	db := statesql.InMemory()
	_, err := Governance(db)
	require.ErrorIs(t, err, sql.ErrNotFound)

	expected := types.GovernanceParams{
		VotingPeriod: 72 * time.Hour,
		Quorum:       types.Units(1_000_000),
		Majority:     51,
	}
	require.NoError(t, SetGovernance(db, expected))
	got, err := Governance(db)
	require.NoError(t, err)
	require.Equal(t, expected.VotingPeriod, got.VotingPeriod)
	require.Zero(t, expected.Quorum.Cmp(got.Quorum))
	require.Equal(t, expected.Majority, got.Majority)

	require.NoError(t, SetGovernance(db, types.GovernanceParams{VotingPeriod: time.Hour}))
	got, err = Governance(db)
	require.NoError(t, err)
	require.Zero(t, got.Quorum.Sign())
	require.Equal(t, time.Hour, got.VotingPeriod)
}
