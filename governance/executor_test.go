package governance

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/peocoin/go-peocoin/common/types"
)

func TestExecuteClosed(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.withScores(map[types.Address]*big.Int{
		alice: types.Units(200),
		bob:   types.Units(1),
	})
	passing := tt.createProposal(t, alice)
	_, err := tt.Vote(ctx, passing.ID, alice, true)
	require.NoError(t, err)
	failing := tt.createProposal(t, alice)
	_, err = tt.Vote(ctx, failing.ID, bob, true)
	require.NoError(t, err)

	x := NewExecutor(tt.Engine)
	n, err := x.ExecuteClosed(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	tt.clock.Advance(3 * 24 * time.Hour)
	open := tt.createProposal(t, alice)
	n, err = x.ExecuteClosed(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	for id, expected := range map[types.ProposalID]types.ProposalStatus{
		passing.ID: types.ProposalExecuted,
		failing.ID: types.ProposalFailed,
		open.ID:    types.ProposalOpen,
	} {
		status, err := tt.Status(ctx, id)
		require.NoError(t, err)
		require.Equal(t, expected, status, "proposal %d", id)
	}

	n, err = x.ExecuteClosed(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	// failed proposals are evaluated on every pass against current thresholds
	require.NoError(t, tt.UpdateParameters(ctx, operator, types.GovernanceParams{
		VotingPeriod: 3 * 24 * time.Hour,
		Quorum:       types.Units(1),
		Majority:     0,
	}))
	n, err = x.ExecuteClosed(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	status, err := tt.Status(ctx, failing.ID)
	require.NoError(t, err)
	require.Equal(t, types.ProposalExecuted, status)
}

func TestExecutorRun(t *testing.T) {
	tt := newTester(t)
	tt.withScores(map[types.Address]*big.Int{alice: types.Units(200)})
	p := tt.createProposal(t, alice)
	_, err := tt.Vote(context.Background(), p.ID, alice, true)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	x := NewExecutor(tt.Engine)
	eg.Go(func() error {
		return x.Run(ctx)
	})
	t.Cleanup(func() {
		cancel()
		require.NoError(t, eg.Wait())
	})

	tt.clock.BlockUntil(1)
	tt.clock.Advance(3 * 24 * time.Hour)
	require.Eventually(t, func() bool {
		status, err := tt.Status(context.Background(), p.ID)
		return err == nil && status == types.ProposalExecuted
	}, time.Second, 10*time.Millisecond)
}
