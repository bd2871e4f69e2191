package staking

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/events"
	"github.com/peocoin/go-peocoin/ledger"
	"github.com/peocoin/go-peocoin/log/logtest"
	"github.com/peocoin/go-peocoin/sql/ledgersql"
	"github.com/peocoin/go-peocoin/sql/statesql"
)

const (
	operator types.Address = "operator"
	minter   types.Address = "minter"
	alice    types.Address = "alice"
	bob      types.Address = "bob"
)

type tester struct {
	*Engine
	ledger   *ledger.Ledger
	clock    clockwork.FakeClock
	reporter *events.Reporter
}

func newTester(tb testing.TB) *tester {
	tb.Helper()
	ac := access.New(access.Config{
		Operators: []types.Address{operator},
		Minters:   []types.Address{minter},
	})
	ldb := ledgersql.InMemory()
	tb.Cleanup(func() { ldb.Close() })
	l := ledger.New(ldb, ac, ledger.WithLogger(logtest.New(tb)))

	db := statesql.InMemory()
	tb.Cleanup(func() { db.Close() })
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	reporter := events.NewReporter(logtest.New(tb), clock)
	return &tester{
		Engine: New(db, l, ac,
			WithLogger(logtest.New(tb)),
			WithClock(clock),
			WithReporter(reporter),
		),
		ledger:   l,
		clock:    clock,
		reporter: reporter,
	}
}

// fund mints amount to the address and approves custody to spend it.
func (t *tester) fund(tb testing.TB, addr types.Address, amount *big.Int) {
	tb.Helper()
	ctx := context.Background()
	require.NoError(tb, t.ledger.Mint(ctx, minter, addr, amount))
	allowance, err := t.ledger.Allowance(ctx, addr, t.cfg.Custody)
	require.NoError(tb, err)
	require.NoError(tb, t.ledger.Approve(ctx, addr, t.cfg.Custody, allowance.Add(allowance, amount)))
}

func (t *tester) requireBalance(tb testing.TB, addr types.Address, expected *big.Int) {
	tb.Helper()
	balance, err := t.ledger.BalanceOf(context.Background(), addr)
	require.NoError(tb, err)
	require.Zero(tb, expected.Cmp(balance), "%s: expected %s, got %s", addr, expected, balance)
}

func TestStakeZero(t *testing.T) {
	tt := newTester(t)
	tt.fund(t, alice, types.Units(100))

	_, err := tt.Stake(context.Background(), alice, new(big.Int))
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.ErrorIs(t, err, types.ErrInvalidAmount)
	_, err = tt.GetStake(context.Background(), alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
	tt.requireBalance(t, alice, types.Units(100))
}

func TestStakeWithoutAllowance(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	require.NoError(t, tt.ledger.Mint(ctx, minter, alice, types.Units(100)))

	_, err := tt.Stake(ctx, alice, types.Units(50))
	require.ErrorIs(t, err, ledger.ErrInsufficientAllowance)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	_, err = tt.GetStake(ctx, alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
	tt.requireBalance(t, alice, types.Units(100))
	tt.requireBalance(t, tt.cfg.Custody, new(big.Int))
}

func TestStakeInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, alice, types.Units(10))
	require.NoError(t, tt.ledger.Approve(ctx, alice, tt.cfg.Custody, types.Units(1000)))

	_, err := tt.Stake(ctx, alice, types.Units(11))
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	_, err = tt.GetStake(ctx, alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
}

func TestStakeTwice(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, alice, types.Units(300))

	stake, err := tt.Stake(ctx, alice, types.Units(100))
	require.NoError(t, err)
	require.Equal(t, tt.clock.Now(), stake.StartTime)

	tt.clock.Advance(time.Hour)
	_, err = tt.Stake(ctx, alice, types.Units(100))
	require.ErrorIs(t, err, ErrStakeExists)
	require.ErrorIs(t, err, types.ErrAlreadyDone)

	got, err := tt.GetStake(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(100).Cmp(got.Principal))
	require.True(t, stake.StartTime.Equal(got.StartTime))
	tt.requireBalance(t, alice, types.Units(200))
	tt.requireBalance(t, tt.cfg.Custody, types.Units(100))
}

func TestUnstakeNoStake(t *testing.T) {
	tt := newTester(t)
	_, err := tt.Unstake(context.Background(), alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = tt.CalculateReward(context.Background(), alice)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestUnstakeBeforeLock(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, alice, types.Units(100))
	_, err := tt.Stake(ctx, alice, types.Units(100))
	require.NoError(t, err)

	tt.clock.Advance(tt.cfg.LockPeriod - time.Second)
	_, err = tt.Unstake(ctx, alice)
	require.ErrorIs(t, err, ErrLockNotEnded)
	require.ErrorIs(t, err, types.ErrTemporalViolation)

	stake, err := tt.GetStake(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(100).Cmp(stake.Principal))
	tt.requireBalance(t, alice, new(big.Int))
	tt.requireBalance(t, tt.cfg.Custody, types.Units(100))

	unlock, err := tt.UnlockTime(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, time.Second, unlock.Sub(tt.clock.Now()))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, alice, types.Units(100))
	tt.fund(t, operator, types.Units(10))
	require.NoError(t, tt.Fund(ctx, operator, types.Units(10)))

	sub := tt.reporter.Subscribe(10)
	_, err := tt.Stake(ctx, alice, types.Units(100))
	require.NoError(t, err)

	total, count, err := tt.TotalStaked(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Zero(t, types.Units(100).Cmp(total))

	reward, err := tt.CalculateReward(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, reward.Sign())

	tt.clock.Advance(8 * day)
	projected, err := tt.CalculateReward(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "109589041095890410", projected.String())

	payout, err := tt.Unstake(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(100).Cmp(payout.Principal))
	require.Zero(t, projected.Cmp(payout.Reward))
	require.Equal(t, 8*day, payout.PaidAt.Sub(payout.StakedAt))
	tt.requireBalance(t, alice, payout.Total())

	_, err = tt.CalculateReward(ctx, alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
	_, err = tt.Unstake(ctx, alice)
	require.ErrorIs(t, err, ErrNoStakeFound)

	history, err := tt.Payouts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Zero(t, projected.Cmp(history[0].Reward))

	reserve, err := tt.Reserve(ctx)
	require.NoError(t, err)
	require.Zero(t, new(big.Int).Sub(types.Units(10), projected).Cmp(reserve))

	ev := <-sub
	require.Equal(t, events.TypeStaked, ev.Type)
	ev = <-sub
	require.Equal(t, events.TypeUnstaked, ev.Type)
	require.Equal(t, projected.String(), ev.Details.(events.EventUnstaked).Reward)

	// stake again after the previous one was released
	tt.fund(t, alice, types.Units(1))
	_, err = tt.Stake(ctx, alice, types.Units(1))
	require.NoError(t, err)
}

func TestUnstakeUnderfunded(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, alice, types.Units(100))
	_, err := tt.Stake(ctx, alice, types.Units(100))
	require.NoError(t, err)

	tt.clock.Advance(tt.cfg.LockPeriod)
	_, err = tt.Unstake(ctx, alice)
	require.ErrorIs(t, err, ErrCustodyUnderfunded)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	_, err = tt.GetStake(ctx, alice)
	require.NoError(t, err)
	history, err := tt.Payouts(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, history)
	tt.requireBalance(t, tt.cfg.Custody, types.Units(100))

	tt.fund(t, operator, types.Units(1))
	require.NoError(t, tt.Fund(ctx, operator, types.Units(1)))
	payout, err := tt.Unstake(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, "95890410958904109", payout.Reward.String())
}

func TestFund(t *testing.T) {
	ctx := context.Background()
	tt := newTester(t)
	tt.fund(t, bob, types.Units(5))

	err := tt.Fund(ctx, bob, types.Units(5))
	require.ErrorIs(t, err, access.ErrUnauthorized)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.ErrorIs(t, tt.Fund(ctx, operator, new(big.Int)), ErrInvalidAmount)
	require.ErrorIs(t, tt.Fund(ctx, operator, types.Units(1)), ledger.ErrInsufficientAllowance)
	tt.requireBalance(t, tt.cfg.Custody, new(big.Int))
}

func TestStakeLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tl := ledger.NewMockTokenLedger(ctrl)
	db := statesql.InMemory()
	t.Cleanup(func() { db.Close() })
	e := New(db, tl, access.New(access.DefaultConfig()), WithLogger(logtest.New(t)))

	failure := errors.New("ledger unavailable")
	tl.EXPECT().
		TransferFrom(gomock.Any(), e.cfg.Custody, alice, e.cfg.Custody, types.Units(7)).
		Return(failure)
	_, err := e.Stake(context.Background(), alice, types.Units(7))
	require.ErrorIs(t, err, failure)
	require.Nil(t, types.ClassOf(err))

	_, err = e.GetStake(context.Background(), alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
}

func TestUnstakeLedgerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tl := ledger.NewMockTokenLedger(ctrl)
	db := statesql.InMemory()
	t.Cleanup(func() { db.Close() })
	clock := clockwork.NewFakeClock()
	e := New(db, tl, access.New(access.DefaultConfig()),
		WithLogger(logtest.New(t)),
		WithClock(clock),
	)

	tl.EXPECT().TransferFrom(gomock.Any(), e.cfg.Custody, alice, e.cfg.Custody, gomock.Any())
	_, err := e.Stake(context.Background(), alice, types.Units(1))
	require.NoError(t, err)

	clock.Advance(e.cfg.LockPeriod)
	failure := errors.New("ledger unavailable")
	tl.EXPECT().Transfer(gomock.Any(), e.cfg.Custody, alice, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _ types.Address, _ *big.Int) error {
			// the release is committed before tokens leave custody
			_, err := e.GetStake(ctx, alice)
			require.ErrorIs(t, err, ErrNoStakeFound)
			history, err := e.Payouts(ctx, alice)
			require.NoError(t, err)
			require.Len(t, history, 1)
			return failure
		})
	_, err = e.Unstake(context.Background(), alice)
	require.ErrorIs(t, err, failure)
	require.NotErrorIs(t, err, ErrCustodyUnderfunded)

	stake, err := e.GetStake(context.Background(), alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(1).Cmp(stake.Principal))
	history, err := e.Payouts(context.Background(), alice)
	require.NoError(t, err)
	require.Empty(t, history)

	// released once the ledger recovers, and only once
	tl.EXPECT().Transfer(gomock.Any(), e.cfg.Custody, alice, gomock.Any())
	payout, err := e.Unstake(context.Background(), alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(1).Cmp(payout.Principal))
	_, err = e.Unstake(context.Background(), alice)
	require.ErrorIs(t, err, ErrNoStakeFound)
}
