package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/log/logtest"
)

func TestRequire(t *testing.T) {
	c := New(Config{
		Operators: []types.Address{"ops"},
		Minters:   []types.Address{"treasury", "ops"},
	}, WithLogger(logtest.New(t)))

	require.NoError(t, c.Require(RoleOperator, "ops"))
	require.NoError(t, c.Require(RoleMinter, "treasury"))

	err := c.Require(RoleOperator, "treasury")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, types.ErrUnauthorized)
	require.True(t, IsUnauthorized(err))
	require.ErrorIs(t, c.Require(RoleOperator, ""), types.ErrUnauthorized)

	require.Equal(t, []types.Address{"ops", "treasury"}, c.Holders(RoleMinter))

	c.Revoke(RoleMinter, "ops")
	require.False(t, c.Has(RoleMinter, "ops"))
	require.True(t, c.Has(RoleOperator, "ops"))

	c.Grant(RoleOperator, "alice")
	require.NoError(t, c.Require(RoleOperator, "alice"))
	require.Equal(t, "minter", RoleMinter.String())
}
