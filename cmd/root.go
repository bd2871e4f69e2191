package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/config"
)

// AddFlags adds flags that override values from the config file.
// Returns the location of the config file.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "directory with databases of the node")
	flagSet.StringVar(&cfg.FileLock, "filelock",
		cfg.FileLock, "lock file that guards the data directory")
	flagSet.BoolVar(&cfg.CollectMetrics, "metrics",
		cfg.CollectMetrics, "collect node metrics")
	flagSet.IntVar(&cfg.MetricsPort, "metrics-port",
		cfg.MetricsPort, "metric server port")
	flagSet.StringVar(&cfg.MetricsPush.URL, "metrics-push",
		cfg.MetricsPush.URL, "push metrics to url")
	flagSet.DurationVar(&cfg.MetricsPush.Period, "metrics-push-period",
		cfg.MetricsPush.Period, "push period")
	flagSet.IntVar(&cfg.DatabaseConnections, "db-connections",
		cfg.DatabaseConnections, "database connection pool size")

	/** ======================== Logging Flags ========================== **/
	flagSet.StringVar(&cfg.Logging.Encoder, "log-encoder",
		cfg.Logging.Encoder, "log as plain text (console) or json")
	flagSet.Var(&levelValue{cfg: &cfg.Logging}, "log-level",
		"level of every module logger")

	/** ======================== Staking Flags ========================== **/
	flagSet.Var(&addressValue{addr: &cfg.Staking.Custody}, "custody",
		"address that holds staked principals and pays rewards")
	flagSet.DurationVar(&cfg.Staking.LockPeriod, "lock-period",
		cfg.Staking.LockPeriod, "minimal time between stake and unstake")
	flagSet.Uint64Var(&cfg.Staking.BaseRateBps, "base-rate-bps",
		cfg.Staking.BaseRateBps, "annual reward rate in basis points")

	/** ======================== Governance Flags ========================== **/
	flagSet.DurationVar(&cfg.Governance.VotingPeriod, "voting-period",
		cfg.Governance.VotingPeriod, "voting period of new proposals, unless set by operator")
	flagSet.Uint64Var(&cfg.Governance.Majority, "majority",
		cfg.Governance.Majority, "percentage of yes weight required to execute, unless set by operator")
	flagSet.DurationVar(&cfg.Governance.ExecuteInterval, "execute-interval",
		cfg.Governance.ExecuteInterval, "how often closed proposals are executed")
	return configPath
}

type levelValue struct {
	cfg   *config.LoggerConfig
	level string
}

func (v *levelValue) String() string {
	return v.level
}

func (v *levelValue) Set(level string) error {
	v.level = level
	v.cfg.SetLevel(level)
	return nil
}

func (v *levelValue) Type() string {
	return "level"
}

type addressValue struct {
	addr *types.Address
}

func (v *addressValue) String() string {
	if v.addr == nil {
		return ""
	}
	return v.addr.String()
}

func (v *addressValue) Set(src string) error {
	addr, err := types.ParseAddress(src)
	if err != nil {
		return fmt.Errorf("parse address: %w", err)
	}
	*v.addr = addr
	return nil
}

func (v *addressValue) Type() string {
	return "address"
}
