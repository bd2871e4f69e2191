// Package ledger implements the fungible token ledger used by staking, scoring and governance.
package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/balances"
)

var (
	// ErrInvalidAmount is returned for zero amounts.
	ErrInvalidAmount = types.NewError(types.ErrInvalidAmount, "ledger: amount must be positive")
	// ErrInsufficientBalance is returned when the sender doesn't hold enough tokens.
	ErrInsufficientBalance = types.NewError(types.ErrInsufficientFunds, "ledger: insufficient balance")
	// ErrInsufficientAllowance is returned when spender isn't authorized for the amount.
	ErrInsufficientAllowance = types.NewError(types.ErrInsufficientFunds, "ledger: insufficient allowance")
)

var _ TokenLedger = (*Ledger)(nil)

// Allocation is an initial balance minted when the ledger is empty.
type Allocation struct {
	Address types.Address `mapstructure:"address"`
	Amount  *big.Int      `mapstructure:"amount"`
}

// Config of the ledger.
type Config struct {
	Genesis []Allocation `mapstructure:"genesis"`
}

// MarshalLogObject implements logging interface.
func (c Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	total := new(big.Int)
	for _, a := range c.Genesis {
		if a.Amount != nil {
			total.Add(total, a.Amount)
		}
	}
	encoder.AddInt("genesis accounts", len(c.Genesis))
	encoder.AddString("genesis supply", types.FormatAmount(total))
	return nil
}

// DefaultConfig has no genesis allocations.
func DefaultConfig() Config {
	return Config{}
}

// Opt for configuring Ledger.
type Opt func(*Ledger)

// WithLogger specifies logger for Ledger.
func WithLogger(logger *zap.Logger) Opt {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithConfig specifies config for Ledger.
func WithConfig(cfg Config) Opt {
	return func(l *Ledger) {
		l.cfg = cfg
	}
}

// Ledger keeps balances and allowances in the database.
type Ledger struct {
	logger *zap.Logger
	cfg    Config
	db     *sql.Database
	access *access.Control

	mu sync.Mutex
}

// New creates a ledger. Minting is restricted to holders of access.RoleMinter.
func New(db *sql.Database, ac *access.Control, opts ...Opt) *Ledger {
	l := &Ledger{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
		db:     db,
		access: ac,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Genesis mints configured allocations if the ledger holds no tokens. Returns true if it did.
func (l *Ledger) Genesis(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	applied := false
	err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		supply, _, err := balances.Supply(tx)
		if err != nil {
			return err
		}
		if supply.Sign() != 0 || len(l.cfg.Genesis) == 0 {
			return nil
		}
		for _, a := range l.cfg.Genesis {
			if !types.Positive(a.Amount) {
				return fmt.Errorf("%w: genesis allocation for %s", ErrInvalidAmount, a.Address)
			}
			if err := credit(tx, a.Address, a.Amount); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if applied {
		supply, _ := l.TotalSupply(ctx)
		supplyGauge.Set(types.TokenFloat(supply))
		l.logger.Info("genesis allocations minted",
			zap.Int("accounts", len(l.cfg.Genesis)),
			log.ZAmount("supply", supply),
		)
	}
	return applied, nil
}

func credit(db sql.Executor, addr types.Address, amount *big.Int) error {
	balance, err := balances.Get(db, addr)
	if err != nil {
		return err
	}
	return balances.Set(db, addr, balance.Add(balance, amount))
}

func debit(db sql.Executor, addr types.Address, amount *big.Int) error {
	balance, err := balances.Get(db, addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance,
			addr, types.FormatAmount(balance), types.FormatAmount(amount))
	}
	return balances.Set(db, addr, balance.Sub(balance, amount))
}

func move(db sql.Executor, from, to types.Address, amount *big.Int) error {
	if err := debit(db, from, amount); err != nil {
		return err
	}
	return credit(db, to, amount)
}

// BalanceOf returns the balance of the address.
func (l *Ledger) BalanceOf(_ context.Context, addr types.Address) (*big.Int, error) {
	return balances.Get(l.db, addr)
}

// TotalSupply returns the sum of all balances.
func (l *Ledger) TotalSupply(_ context.Context) (*big.Int, error) {
	supply, _, err := balances.Supply(l.db)
	return supply, err
}

// Allowance returns how much spender may transfer on behalf of owner.
func (l *Ledger) Allowance(_ context.Context, owner, spender types.Address) (*big.Int, error) {
	return balances.Allowance(l.db, owner, spender)
}

// Transfer moves amount from one address to another.
func (l *Ledger) Transfer(ctx context.Context, from, to types.Address, amount *big.Int) error {
	if !types.Positive(amount) {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		return move(tx, from, to, amount)
	}); err != nil {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, err)
	}
	l.logger.Debug("transfer",
		log.ZAddress("from", from),
		log.ZAddress("to", to),
		log.ZAmount("amount", amount),
	)
	return nil
}

// Approve sets the amount spender may transfer on behalf of owner. Zero revokes the allowance.
func (l *Ledger) Approve(ctx context.Context, owner, spender types.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		return balances.SetAllowance(tx, owner, spender, amount)
	}); err != nil {
		return fmt.Errorf("approve %s for %s: %w", spender, owner, err)
	}
	l.logger.Debug("approve",
		log.ZAddress("owner", owner),
		log.ZAddress("spender", spender),
		log.ZAmount("amount", amount),
	)
	return nil
}

// TransferFrom moves amount from one address to another on behalf of spender, consuming allowance.
func (l *Ledger) TransferFrom(ctx context.Context, spender, from, to types.Address, amount *big.Int) error {
	if !types.Positive(amount) {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		allowance, err := balances.Allowance(tx, from, spender)
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: %s may spend %s of %s, needs %s", ErrInsufficientAllowance,
				spender, types.FormatAmount(allowance), from, types.FormatAmount(amount))
		}
		if err := move(tx, from, to, amount); err != nil {
			return err
		}
		return balances.SetAllowance(tx, from, spender, allowance.Sub(allowance, amount))
	}); err != nil {
		return fmt.Errorf("transfer from %s -> %s: %w", from, to, err)
	}
	l.logger.Debug("transfer from",
		log.ZAddress("spender", spender),
		log.ZAddress("from", from),
		log.ZAddress("to", to),
		log.ZAmount("amount", amount),
	)
	return nil
}

// Mint creates amount tokens on the address. Caller must hold access.RoleMinter.
func (l *Ledger) Mint(ctx context.Context, caller, to types.Address, amount *big.Int) error {
	if err := l.access.Require(access.RoleMinter, caller); err != nil {
		return err
	}
	if !types.Positive(amount) {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		return credit(tx, to, amount)
	}); err != nil {
		return fmt.Errorf("mint to %s: %w", to, err)
	}
	supplyGauge.Add(types.TokenFloat(amount))
	l.logger.Info("minted",
		log.ZAddress("minter", caller),
		log.ZAddress("to", to),
		log.ZAmount("amount", amount),
	)
	return nil
}

// Burn destroys amount tokens held by the address.
func (l *Ledger) Burn(ctx context.Context, from types.Address, amount *big.Int) error {
	if !types.Positive(amount) {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.WithTx(ctx, func(tx *sql.Tx) error {
		return debit(tx, from, amount)
	}); err != nil {
		return fmt.Errorf("burn from %s: %w", from, err)
	}
	supplyGauge.Sub(types.TokenFloat(amount))
	l.logger.Info("burned",
		log.ZAddress("from", from),
		log.ZAmount("amount", amount),
	)
	return nil
}

// Holders calls fn for every address with non-zero balance.
func (l *Ledger) Holders(_ context.Context, fn func(types.Address, *big.Int) bool) error {
	return balances.Holders(l.db, fn)
}
