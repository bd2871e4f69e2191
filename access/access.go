// Package access grants roles to addresses and checks them on privileged operations.
package access

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/log"
)

// ErrUnauthorized is returned when caller doesn't hold the required role.
var ErrUnauthorized = types.NewError(types.ErrUnauthorized, "caller lacks required role")

// Role is a capability that can be granted to an address.
type Role uint8

const (
	// RoleOperator updates score weights and governance parameters and funds custody.
	RoleOperator Role = iota + 1
	// RoleMinter mints tokens on the reference ledger.
	RoleMinter
)

func (r Role) String() string {
	switch r {
	case RoleOperator:
		return "operator"
	case RoleMinter:
		return "minter"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Config lists addresses that hold each role at startup.
type Config struct {
	Operators []types.Address `mapstructure:"operators"`
	Minters   []types.Address `mapstructure:"minters"`
}

// MarshalLogObject implements logging interface.
func (c Config) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddInt("operators", len(c.Operators))
	encoder.AddInt("minters", len(c.Minters))
	return nil
}

// DefaultConfig grants no roles.
func DefaultConfig() Config {
	return Config{}
}

// Opt for configuring Control.
type Opt func(*Control)

// WithLogger specifies logger for Control.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Control) {
		c.logger = logger
	}
}

// Control holds granted roles.
type Control struct {
	logger *zap.Logger

	mu    sync.RWMutex
	roles map[Role]map[types.Address]struct{}
}

// New creates Control with roles from cfg.
func New(cfg Config, opts ...Opt) *Control {
	c := &Control{
		logger: zap.NewNop(),
		roles:  map[Role]map[types.Address]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, addr := range cfg.Operators {
		c.Grant(RoleOperator, addr)
	}
	for _, addr := range cfg.Minters {
		c.Grant(RoleMinter, addr)
	}
	return c
}

// Grant role to the address.
func (c *Control) Grant(role Role, addr types.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	holders, ok := c.roles[role]
	if !ok {
		holders = map[types.Address]struct{}{}
		c.roles[role] = holders
	}
	holders[addr] = struct{}{}
	c.logger.Debug("role granted", zap.Stringer("role", role), log.ZAddress("address", addr))
}

// Revoke role from the address.
func (c *Control) Revoke(role Role, addr types.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.roles[role], addr)
	c.logger.Debug("role revoked", zap.Stringer("role", role), log.ZAddress("address", addr))
}

// Has returns true if address holds the role.
func (c *Control) Has(role Role, addr types.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.roles[role][addr]
	return ok
}

// Holders returns sorted addresses that hold the role.
func (c *Control) Holders(role Role) []types.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rst := make([]types.Address, 0, len(c.roles[role]))
	for addr := range c.roles[role] {
		rst = append(rst, addr)
	}
	slices.Sort(rst)
	return rst
}

// Require returns an error matching ErrUnauthorized if caller doesn't hold the role.
func (c *Control) Require(role Role, caller types.Address) error {
	if caller.Empty() {
		return fmt.Errorf("%w: %s required, caller is not set", ErrUnauthorized, role)
	}
	if !c.Has(role, caller) {
		return fmt.Errorf("%w: %s required, %s doesn't hold it", ErrUnauthorized, role, caller)
	}
	return nil
}

// IsUnauthorized returns true if err was produced by Require.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
