package proposals

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/statesql"
)

func genProposal(id types.ProposalID, created time.Time) *types.Proposal {
	return &types.Proposal{
		ID:             id,
		Creator:        "alice",
		Description:    "raise the base rate",
		CreatedAt:      created,
		VotingDeadline: created.Add(72 * time.Hour),
		YesWeight:      new(big.Int),
		NoWeight:       new(big.Int),
	}
}

func TestAddGet(t *testing.T) {
	db := statesql.InMemory()
	created := time.Unix(1_700_000_000, 0).UTC()

	id, err := NextID(db)
	require.NoError(t, err)
	require.Equal(t, types.ProposalID(0), id)

	p := genProposal(id, created)
	require.NoError(t, Add(db, p))
	require.ErrorIs(t, Add(db, p), sql.ErrObjectExists)

	id, err = NextID(db)
	require.NoError(t, err)
	require.Equal(t, types.ProposalID(1), id)

	got, err := Get(db, 0)
	require.NoError(t, err)
	require.Equal(t, p.Creator, got.Creator)
	require.Equal(t, p.Description, got.Description)
	require.True(t, p.CreatedAt.Equal(got.CreatedAt))
	require.True(t, p.VotingDeadline.Equal(got.VotingDeadline))
	require.Zero(t, got.YesWeight.Sign())
	require.Zero(t, got.NoWeight.Sign())
	require.False(t, got.Executed)
	require.True(t, got.ExecutedAt.IsZero())

	_, err = Get(db, 1)
	require.ErrorIs(t, err, sql.ErrNotFound)
}

func TestTallyAndExecution(t *testing.T) {
	db := statesql.InMemory()
	created := time.Unix(1_700_000_000, 0).UTC()
	require.NoError(t, Add(db, genProposal(0, created)))

	require.NoError(t, SetTally(db, 0, types.Units(3), types.Units(1)))
	require.ErrorIs(t, SetTally(db, 7, types.Units(3), types.Units(1)), sql.ErrNotFound)

	executed := created.Add(73 * time.Hour)
	require.NoError(t, SetExecuted(db, 0, executed))
	require.ErrorIs(t, SetExecuted(db, 0, executed), sql.ErrNotFound)

	got, err := Get(db, 0)
	require.NoError(t, err)
	require.Zero(t, types.Units(3).Cmp(got.YesWeight))
	require.Zero(t, types.Units(1).Cmp(got.NoWeight))
	require.True(t, got.Executed)
	require.True(t, executed.Equal(got.ExecutedAt))
}

func TestListAndClosed(t *testing.T) {
	db := statesql.InMemory()
	created := time.Unix(1_700_000_000, 0).UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, Add(db, genProposal(types.ProposalID(i), created.Add(time.Duration(i)*time.Hour))))
	}
	n, err := Count(db)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	all, err := List(db, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := List(db, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, types.ProposalID(2), page[0].ID)
	require.Equal(t, types.ProposalID(3), page[1].ID)

	// deadlines are created + 72h + i hours
	closed, err := Closed(db, created.Add(73*time.Hour))
	require.NoError(t, err)
	require.Len(t, closed, 2)

	require.NoError(t, SetExecuted(db, 0, created.Add(80*time.Hour)))
	closed, err = Closed(db, created.Add(73*time.Hour))
	require.NoError(t, err)
	require.Len(t, closed, 1)
	require.Equal(t, types.ProposalID(1), closed[0].ID)
}
