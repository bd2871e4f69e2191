package node

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/config"
	"github.com/peocoin/go-peocoin/ledger"
	"github.com/peocoin/go-peocoin/log/logtest"
)

const (
	alice    types.Address = "alice"
	bob      types.Address = "bob"
	operator types.Address = "operator"
)

func testConfig(tb testing.TB) *config.Config {
	cfg := config.DefaultConfig()
	cfg.DataDirParent = tb.TempDir()
	cfg.DatabaseConnections = 4
	cfg.Access = access.Config{
		Operators: []types.Address{operator},
		Minters:   []types.Address{operator},
	}
	cfg.Ledger.Genesis = []ledger.Allocation{
		{Address: alice, Amount: types.Units(1000)},
		{Address: operator, Amount: types.Units(500)},
	}
	return &cfg
}

func setupApp(tb testing.TB, cfg *config.Config, clock clockwork.Clock) *App {
	tb.Helper()
	app := New(WithConfig(cfg), WithLog(logtest.New(tb)), WithClock(clock))
	require.NoError(tb, app.Lock())
	tb.Cleanup(app.Unlock)
	require.NoError(tb, app.Initialize(context.Background()))
	tb.Cleanup(func() { app.Cleanup(context.Background()) })
	return app
}

func TestApp_Lock(t *testing.T) {
	cfg := testConfig(t)
	first := New(WithConfig(cfg), WithLog(logtest.New(t)))
	require.NoError(t, first.Lock())

	observer, logs := observer.New(zapcore.WarnLevel)
	second := New(WithConfig(cfg), WithLog(zap.New(observer)))
	require.ErrorContains(t, second.Lock(), "is used by another process")

	first.Unlock()
	require.NoError(t, second.Lock())
	second.Unlock()
	second.Unlock()
	require.Zero(t, logs.Len())
}

func TestApp_Genesis(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	clock := clockwork.NewFakeClock()

	app := New(WithConfig(cfg), WithLog(logtest.New(t)), WithClock(clock))
	require.NoError(t, app.Initialize(ctx))
	require.NoError(t, app.ledger.Transfer(ctx, alice, bob, types.Units(10)))
	app.Cleanup(ctx)

	// allocations are minted only into an empty ledger
	app = setupApp(t, cfg, clock)
	balance, err := app.ledger.BalanceOf(ctx, alice)
	require.NoError(t, err)
	require.Zero(t, types.Units(990).Cmp(balance))
	supply, err := app.ledger.TotalSupply(ctx)
	require.NoError(t, err)
	require.Zero(t, types.Units(1500).Cmp(supply))
}

func TestApp_Snapshot(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	app := setupApp(t, cfg, clock)
	custody := app.staking.Config().Custody

	require.NoError(t, app.ledger.Approve(ctx, alice, custody, types.Units(100)))
	_, err := app.staking.Stake(ctx, alice, types.Units(100))
	require.NoError(t, err)
	require.NoError(t, app.ledger.Approve(ctx, operator, custody, types.Units(50)))
	require.NoError(t, app.staking.Fund(ctx, operator, types.Units(50)))
	p, err := app.governance.CreateProposal(ctx, alice, "raise base rate")
	require.NoError(t, err)
	_, err = app.governance.Vote(ctx, p.ID, alice, true)
	require.NoError(t, err)
	clock.Advance(8 * 24 * time.Hour)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	snap, err := app.Export(ctx, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, snap.Supply, decoded.Supply)
	require.Equal(t, types.FormatAmount(types.Units(1500)), decoded.Supply)
	require.Equal(t, types.FormatAmount(types.Units(900)), decoded.Balances[alice])
	require.Equal(t, types.FormatAmount(types.Units(150)), decoded.Balances[custody])
	require.Equal(t, types.FormatAmount(types.Units(100)), decoded.TotalStaked)
	require.Equal(t, types.FormatAmount(types.Units(50)), decoded.Reserve)

	require.Len(t, decoded.Stakes, 1)
	reward, err := app.staking.CalculateReward(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, alice, decoded.Stakes[0].Participant)
	require.Equal(t, types.FormatAmount(reward), decoded.Stakes[0].Reward)

	require.Len(t, decoded.Proposals, 1)
	require.Equal(t, types.ProposalExecutable.String(), decoded.Proposals[0].Status)
	require.Equal(t, app.scoring.Weights(), decoded.Weights)
}

func TestApp_Start(t *testing.T) {
	cfg := testConfig(t)
	clock := clockwork.NewFakeClock()
	app := setupApp(t, cfg, clock)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- app.Start(ctx)
	}()
	clock.BlockUntil(1)
	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "app didn't stop")
	}
}

func execute(tb testing.TB, args ...string) (string, error) {
	tb.Helper()
	c := GetCommand()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"access": {"operators": ["operator"], "minters": ["operator"]},
		"ledger": {"genesis": [{"address": "alice", "amount": "1000tok"}]},
		"staking": {"custody": "vault"}
	}`), 0o600))
	base := []string{"-c", cfgPath, "--data-folder", filepath.Join(dir, "data"), "--log-level", "error"}
	run := func(args ...string) string {
		t.Helper()
		out, err := execute(t, append(append([]string{}, base...), args...)...)
		require.NoError(t, err, out)
		return out
	}

	var balance map[string]string
	require.NoError(t, json.Unmarshal([]byte(run("balance", "alice")), &balance))
	require.Equal(t, types.FormatAmount(types.Units(1000)), balance["balance"])
	require.Equal(t, "0", balance["allowance"])

	run("mint", "bob", "5tok", "--from", "operator")
	run("approve", "vault", "100tok", "--from", "alice")
	var stake stakeView
	require.NoError(t, json.Unmarshal([]byte(run("stake", "100tok", "--from", "alice")), &stake))
	require.Equal(t, alice, stake.Participant)
	require.Equal(t, types.FormatAmount(types.Units(100)), stake.Principal)

	var score scoreView
	require.NoError(t, json.Unmarshal([]byte(run("score", "alice")), &score))
	require.Equal(t, types.FormatAmount(types.Units(900)), score.Balance)

	var weights types.ScoreWeights
	require.NoError(t, json.Unmarshal([]byte(run("weights", "2", "1", "0", "--from", "operator")), &weights))
	require.Equal(t, types.ScoreWeights{Token: 2, Stake: 1}, weights)

	var proposal proposalView
	require.NoError(t, json.Unmarshal([]byte(run("propose", "add", "tier", "--from", "bob")), &proposal))
	require.Equal(t, "add tier", proposal.Description)
	run("vote", proposal.ID.String(), "yes", "--from", "alice")

	var proposals []proposalView
	require.NoError(t, json.Unmarshal([]byte(run("proposals")), &proposals))
	require.Len(t, proposals, 1)
	require.Equal(t, types.ProposalOpen.String(), proposals[0].Status)

	var params paramsView
	require.NoError(t, json.Unmarshal([]byte(run("params", "1h", "1tok", "60", "--from", "operator")), &params))
	require.Equal(t, paramsView{VotingPeriod: "1h0m0s", Quorum: types.FormatAmount(types.Units(1)), Majority: 60}, params)

	out := run("export", filepath.Join(dir, "snapshot.json"))
	require.Contains(t, out, "exported 3 accounts, 1 stakes and 1 proposals")

	t.Run("missing caller", func(t *testing.T) {
		_, err := execute(t, append(append([]string{}, base...), "unstake")...)
		require.ErrorContains(t, err, "--from")
	})
	t.Run("lock not ended", func(t *testing.T) {
		_, err := execute(t, append(append([]string{}, base...), "unstake", "--from", "alice")...)
		require.ErrorIs(t, err, types.ErrTemporalViolation)
	})
	t.Run("unauthorized", func(t *testing.T) {
		_, err := execute(t, append(append([]string{}, base...), "fund", "1tok", "--from", "alice")...)
		require.ErrorIs(t, err, types.ErrUnauthorized)
	})
	t.Run("invalid vote", func(t *testing.T) {
		_, err := execute(t, append(append([]string{}, base...), "vote", "0", "maybe", "--from", "alice")...)
		require.ErrorContains(t, err, "vote must be yes or no")
	})
	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		require.Equal(t, "\n", out)
	})
}
