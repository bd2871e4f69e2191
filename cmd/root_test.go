package cmd

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/config"
)

func TestAddFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	path := AddFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{
		"-c", "/etc/peo.json",
		"--data-folder", "/data",
		"--log-level", "debug",
		"--custody", "vault-2",
		"--lock-period", "48h",
		"--majority", "66",
	}))
	require.Equal(t, "/etc/peo.json", *path)
	require.Equal(t, "/data", cfg.DataDirParent)
	require.Equal(t, types.Address("vault-2"), cfg.Staking.Custody)
	require.Equal(t, 48*time.Hour, cfg.Staking.LockPeriod)
	require.EqualValues(t, 66, cfg.Governance.Majority)

	lvl, err := cfg.Logging.Level(config.GovernanceLogger)
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl.Level())
	require.Equal(t, "debug", fs.Lookup("log-level").Value.String())
}

func TestAddFlagsInvalidAddress(t *testing.T) {
	cfg := config.DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs, &cfg)

	err := fs.Parse([]string{"--custody", "not valid"})
	require.ErrorContains(t, err, "invalid address")
	require.Equal(t, config.DefaultConfig().Staking.Custody, cfg.Staking.Custody)
}
