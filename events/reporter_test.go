package events

import (
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/log/logtest"
)

func TestReporter(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	r := NewReporter(logtest.New(t), clock)

	sub := r.Subscribe(2)
	r.EmitStaked("alice", types.Units(200), clock.Now())
	r.EmitVoteCast(&types.Ballot{Proposal: 3, Voter: "bob", Support: true, Weight: big.NewInt(7)})
	// buffer is full, dropped
	r.EmitProposalExecuted(&types.Proposal{ID: 3, YesWeight: big.NewInt(7), NoWeight: big.NewInt(0)})

	ev := <-sub
	require.Equal(t, TypeStaked, ev.Type)
	require.True(t, clock.Now().Equal(ev.Timestamp))
	require.Equal(t, EventStaked{
		Participant: "alice",
		Amount:      types.Units(200).String(),
		StartTime:   clock.Now(),
	}, ev.Details)

	ev = <-sub
	require.Equal(t, TypeVoteCast, ev.Type)
	require.Equal(t, EventVoteCast{ID: 3, Voter: "bob", Support: true, Weight: "7"}, ev.Details)

	select {
	case ev := <-sub:
		require.FailNow(t, "unexpected event", ev.Type)
	default:
	}

	r.Unsubscribe(sub)
	_, open := <-sub
	require.False(t, open)
	r.EmitWeightsUpdated("ops", types.ScoreWeights{Token: 1})
}

func TestNilReporter(t *testing.T) {
	var r *Reporter
	require.Nil(t, r.Subscribe(1))
	r.Unsubscribe(nil)
	r.EmitUnstaked(&types.Payout{Principal: big.NewInt(1), Reward: big.NewInt(0)})
	r.EmitParametersUpdated("ops", types.GovernanceParams{Quorum: big.NewInt(1)})
}
