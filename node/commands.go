package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/peocoin/go-peocoin/common/types"
)

type operation func(ctx context.Context, c *cobra.Command, app *App, args []string) error

// addOperations adds commands that read or modify state of the node.
func addOperations(root *cobra.Command, from *string, run func(operation) func(*cobra.Command, []string) error) {
	caller := func() (types.Address, error) {
		if *from == "" {
			return "", errors.New("caller address is required, set it with --from")
		}
		return types.ParseAddress(*from)
	}

	root.AddCommand(&cobra.Command{
		Use:   "balance <address>",
		Short: "Show token balance and allowance granted to the staking custody",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			addr, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			balance, err := app.ledger.BalanceOf(ctx, addr)
			if err != nil {
				return err
			}
			allowance, err := app.ledger.Allowance(ctx, addr, app.staking.Config().Custody)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]string{
				"address":   addr.String(),
				"balance":   types.FormatAmount(balance),
				"allowance": types.FormatAmount(allowance),
			})
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "mint <to> <amount>",
		Short: "Mint tokens, requires the minter role",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			minter, err := caller()
			if err != nil {
				return err
			}
			to, amount, err := addressAndAmount(args)
			if err != nil {
				return err
			}
			return app.ledger.Mint(ctx, minter, to, amount)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "approve <spender> <amount>",
		Short: "Allow spender to transfer tokens of the caller",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			owner, err := caller()
			if err != nil {
				return err
			}
			spender, amount, err := addressAndAmount(args)
			if err != nil {
				return err
			}
			return app.ledger.Approve(ctx, owner, spender, amount)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "transfer <to> <amount>",
		Short: "Transfer tokens of the caller",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			sender, err := caller()
			if err != nil {
				return err
			}
			to, amount, err := addressAndAmount(args)
			if err != nil {
				return err
			}
			return app.ledger.Transfer(ctx, sender, to, amount)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "stake <amount>",
		Short: "Stake tokens of the caller, custody must be approved for the amount",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			participant, err := caller()
			if err != nil {
				return err
			}
			amount, err := types.ParseAmount(args[0])
			if err != nil {
				return err
			}
			stake, err := app.staking.Stake(ctx, participant, amount)
			if err != nil {
				return err
			}
			return printJSON(c, app.stakeView(stake))
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "unstake",
		Short: "Release the stake of the caller with the accrued reward",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			participant, err := caller()
			if err != nil {
				return err
			}
			payout, err := app.staking.Unstake(ctx, participant)
			if err != nil {
				return err
			}
			return printJSON(c, newPayoutView(payout))
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "reward <address>",
		Short: "Show the stake and the reward accrued so far",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			addr, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			stake, err := app.staking.GetStake(ctx, addr)
			if err != nil {
				return err
			}
			reward, err := app.staking.CalculateReward(ctx, addr)
			if err != nil {
				return err
			}
			v := app.stakeView(stake)
			v.Reward = types.FormatAmount(reward)
			return printJSON(c, v)
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "fund <amount>",
		Short: "Move tokens of the caller to the custody to pay rewards, requires the operator role",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			operator, err := caller()
			if err != nil {
				return err
			}
			amount, err := types.ParseAmount(args[0])
			if err != nil {
				return err
			}
			if err := app.staking.Fund(ctx, operator, amount); err != nil {
				return err
			}
			reserve, err := app.staking.Reserve(ctx)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]string{"reserve": types.FormatAmount(reserve)})
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "score <address>",
		Short: "Show the contribution score and its terms",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			addr, err := types.ParseAddress(args[0])
			if err != nil {
				return err
			}
			b, err := app.scoring.Breakdown(ctx, addr)
			if err != nil {
				return err
			}
			return printJSON(c, newScoreView(b))
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "weights [<token> <stake> <duration>]",
		Short: "Show score weights, or replace them with the operator role",
		Args:  oneOfArgs(0, 3),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			if len(args) == 3 {
				operator, err := caller()
				if err != nil {
					return err
				}
				var values [3]uint64
				for i, arg := range args {
					v, err := strconv.ParseUint(arg, 10, 64)
					if err != nil {
						return fmt.Errorf("parse weight %q: %w", arg, err)
					}
					values[i] = v
				}
				w := types.ScoreWeights{Token: values[0], Stake: values[1], Duration: values[2]}
				if err := app.scoring.UpdateWeights(ctx, operator, w); err != nil {
					return err
				}
			}
			return printJSON(c, app.scoring.Weights())
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "propose <description>",
		Short: "Create a proposal, the caller must hold tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			creator, err := caller()
			if err != nil {
				return err
			}
			p, err := app.governance.CreateProposal(ctx, creator, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(c, newProposalView(p, app.clock.Now(), app.governance.Parameters()))
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "vote <id> <yes|no>",
		Short: "Vote on an open proposal with the current score of the caller",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			voter, err := caller()
			if err != nil {
				return err
			}
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			var support bool
			switch strings.ToLower(args[1]) {
			case "yes", "y", "true":
				support = true
			case "no", "n", "false":
			default:
				return fmt.Errorf("vote must be yes or no, got %q", args[1])
			}
			ballot, err := app.governance.Vote(ctx, id, voter, support)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]any{
				"id":      ballot.Proposal,
				"voter":   ballot.Voter,
				"support": ballot.Support,
				"weight":  ballot.Weight.String(),
			})
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "execute <id>",
		Short: "Execute a proposal after its voting deadline",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			executed, err := app.governance.ExecuteProposal(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]any{"id": id, "executed": executed})
		}),
	})

	var start uint64
	var limit int
	proposalsCmd := &cobra.Command{
		Use:   "proposals",
		Short: "List proposals with their tallies",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			proposals, err := app.governance.Proposals(ctx, types.ProposalID(start), limit)
			if err != nil {
				return err
			}
			now, params := app.clock.Now(), app.governance.Parameters()
			views := make([]proposalView, 0, len(proposals))
			for _, p := range proposals {
				views = append(views, newProposalView(p, now, params))
			}
			return printJSON(c, views)
		}),
	}
	proposalsCmd.Flags().Uint64Var(&start, "start", 0, "first proposal id")
	proposalsCmd.Flags().IntVar(&limit, "limit", 0, "maximal number of proposals, 0 lists all")
	root.AddCommand(proposalsCmd)

	root.AddCommand(&cobra.Command{
		Use:   "params [<voting-period> <quorum> <majority>]",
		Short: "Show governance parameters, or replace them with the operator role",
		Args:  oneOfArgs(0, 3),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			if len(args) == 3 {
				operator, err := caller()
				if err != nil {
					return err
				}
				period, err := time.ParseDuration(args[0])
				if err != nil {
					return fmt.Errorf("parse voting period: %w", err)
				}
				quorum, err := types.ParseAmount(args[1])
				if err != nil {
					return err
				}
				majority, err := strconv.ParseUint(args[2], 10, 64)
				if err != nil {
					return fmt.Errorf("parse majority: %w", err)
				}
				if err := app.governance.UpdateParameters(ctx, operator, types.GovernanceParams{
					VotingPeriod: period,
					Quorum:       quorum,
					Majority:     majority,
				}); err != nil {
					return err
				}
			}
			return printJSON(c, newParamsView(app.governance.Parameters()))
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "export <path>",
		Short: "Write a json snapshot of balances, stakes and proposals",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *cobra.Command, app *App, args []string) error {
			snap, err := app.Export(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "exported %d accounts, %d stakes and %d proposals to %s\n",
				len(snap.Balances), len(snap.Stakes), len(snap.Proposals), args[0])
			return nil
		}),
	})
}

func printJSON(c *cobra.Command, v any) error {
	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func oneOfArgs(counts ...int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		for _, n := range counts {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("accepts %v args, received %d", counts, len(args))
	}
}

func addressAndAmount(args []string) (types.Address, *big.Int, error) {
	addr, err := types.ParseAddress(args[0])
	if err != nil {
		return "", nil, err
	}
	amount, err := types.ParseAmount(args[1])
	if err != nil {
		return "", nil, err
	}
	return addr, amount, nil
}

func parseProposalID(s string) (types.ProposalID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse proposal id %q: %w", s, err)
	}
	return types.ProposalID(id), nil
}
