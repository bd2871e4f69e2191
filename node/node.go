// Package node contains the peocoin node and the operational commands that share its database.
package node

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peocoin/go-peocoin/access"
	"github.com/peocoin/go-peocoin/cmd"
	"github.com/peocoin/go-peocoin/config"
	"github.com/peocoin/go-peocoin/events"
	"github.com/peocoin/go-peocoin/governance"
	"github.com/peocoin/go-peocoin/ledger"
	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/metrics"
	"github.com/peocoin/go-peocoin/scoring"
	"github.com/peocoin/go-peocoin/sql"
	"github.com/peocoin/go-peocoin/sql/ledgersql"
	"github.com/peocoin/go-peocoin/sql/statesql"
	"github.com/peocoin/go-peocoin/staking"
)

const eventsBufferSize = 256

// GetCommand returns the root command of the peocoin executable.
func GetCommand() *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:           "peo",
		Short:         "peocoin staking and governance",
		SilenceErrors: true,
	}
	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)
	from := c.PersistentFlags().String("from", "", "address of the caller")

	nodeCmd := &cobra.Command{
		Use:   "node",
		Short: "start node",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}
			logger, err := newLogger(&conf)
			if err != nil {
				return err
			}
			app := New(WithConfig(&conf), WithLog(logger))

			// os.Interrupt for all systems, especially windows, syscall.SIGTERM is mainly for docker.
			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := os.MkdirAll(app.Config.DataDir(), 0o700); err != nil {
				return log.ErrEnsureDataDir(app.Config.DataDir(), err)
			}
			if err := app.Lock(); err != nil {
				return fmt.Errorf("getting exclusive file lock: %w", err)
			}
			defer app.Unlock()

			if err := app.Initialize(ctx); err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}
			// Don't print usage on error from this point forward
			c.SilenceUsage = true

			// This blocks until the context is finished or until an error is produced
			err = app.Start(ctx)
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cleanupCancel()
			app.Cleanup(cleanupCtx)
			return err
		},
	}
	c.AddCommand(nodeCmd)

	// versionCmd returns the current version of peocoin.
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), cmd.Version)
		},
	}
	c.AddCommand(versionCmd)

	run := func(fn operation) func(*cobra.Command, []string) error {
		return func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}
			c.SilenceUsage = true
			return withApp(c.Context(), &conf, func(ctx context.Context, app *App) error {
				return fn(ctx, c, app, args)
			})
		}
	}
	addOperations(c, from, run)
	return c
}

// configure loads the config file and applies flags set on the command line on top of it.
func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	type flagValue struct {
		flag  *pflag.Flag
		value string
	}
	var changed []flagValue
	c.Flags().Visit(func(f *pflag.Flag) {
		changed = append(changed, flagValue{flag: f, value: f.Value.String()})
	})
	if err := config.Load(conf, configPath); err != nil {
		return log.ErrMalformedConfig(err)
	}
	// apply CLI args to config
	for _, fv := range changed {
		if err := fv.flag.Value.Set(fv.value); err != nil {
			return log.ErrBadFlags(fmt.Errorf("flag %s: %w", fv.flag.Name, err))
		}
	}
	return nil
}

func newLogger(conf *config.Config) (*zap.Logger, error) {
	enc, err := log.Encoder(conf.Logging.Encoder)
	if err != nil {
		return nil, err
	}
	// module loggers can only increase the level of the root logger.
	lvl, err := conf.Logging.MinLevel()
	if err != nil {
		return nil, err
	}
	return log.NewWithLevel("peo", zap.NewAtomicLevelAt(lvl), enc), nil
}

// withApp runs fn against an initialized app that holds the data directory lock.
func withApp(ctx context.Context, conf *config.Config, fn func(context.Context, *App) error) error {
	logger, err := newLogger(conf)
	if err != nil {
		return err
	}
	app := New(WithConfig(conf), WithLog(logger))
	if err := os.MkdirAll(app.Config.DataDir(), 0o700); err != nil {
		return log.ErrEnsureDataDir(app.Config.DataDir(), err)
	}
	if err := app.Lock(); err != nil {
		return fmt.Errorf("getting exclusive file lock: %w", err)
	}
	defer app.Unlock()
	if err := app.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer app.Cleanup(ctx)
	return fn(ctx, app)
}

// Option to modify an App instance.
type Option func(app *App)

// WithLog enables logger for an App.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithClock overwrites the clock used by staking, scoring and governance.
func WithClock(clock clockwork.Clock) Option {
	return func(app *App) {
		app.clock = clock
	}
}

// New creates an instance of the peocoin app.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config: &defaultConfig,
		log:    log.NewNop(),
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// App wires components of the node.
type App struct {
	Config   *config.Config
	log      *zap.Logger
	clock    clockwork.Clock
	fileLock *flock.Flock

	stateDB  *sql.Database
	ledgerDB *sql.Database

	reporter   *events.Reporter
	access     *access.Control
	ledger     *ledger.Ledger
	staking    *staking.Engine
	scoring    *scoring.Engine
	governance *governance.Engine
	executor   *governance.Executor
}

// Lock locks the app for exclusive use. It returns an error if the app is already locked.
func (app *App) Lock() error {
	path := app.Config.LockPath()
	lockDir := filepath.Dir(path)
	if _, err := os.Stat(lockDir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(lockDir, 0o700); err != nil {
			return fmt.Errorf("creating dir %s for lock %s: %w", lockDir, path, err)
		}
	}
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", path, err)
	} else if !locked {
		return log.ErrLockDataDir(app.Config.DataDir())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the app. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
	app.fileLock = nil
}

func (app *App) addLogger(name string) *zap.Logger {
	lvl, err := app.Config.Logging.Level(name)
	if err != nil {
		app.log.Panic("unable to decode logger level", zap.String("module", name), zap.Error(err))
	}
	return app.log.WithOptions(zap.IncreaseLevel(lvl)).Named(name)
}

// Initialize opens databases and creates components. Genesis allocations are minted on the first start.
func (app *App) Initialize(ctx context.Context) error {
	app.log.Info(app.getAppInfo())
	app.log.Info("loaded config", zap.Object("config", app.Config))

	if err := app.setupDBs(); err != nil {
		return err
	}
	app.reporter = events.NewReporter(app.addLogger(config.AppLogger), app.clock)
	app.access = access.New(app.Config.Access, access.WithLogger(app.addLogger(config.AccessLogger)))
	app.ledger = ledger.New(app.ledgerDB, app.access,
		ledger.WithLogger(app.addLogger(config.LedgerLogger)),
		ledger.WithConfig(app.Config.Ledger),
	)
	if _, err := app.ledger.Genesis(ctx); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	app.staking = staking.New(app.stateDB, app.ledger, app.access,
		staking.WithLogger(app.addLogger(config.StakingLogger)),
		staking.WithConfig(app.Config.Staking),
		staking.WithClock(app.clock),
		staking.WithReporter(app.reporter),
	)
	var err error
	app.scoring, err = scoring.New(app.stateDB, app.ledger, app.staking, app.access,
		scoring.WithLogger(app.addLogger(config.ScoringLogger)),
		scoring.WithConfig(app.Config.Scoring),
		scoring.WithClock(app.clock),
		scoring.WithReporter(app.reporter),
	)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	app.governance, err = governance.New(app.stateDB, app.scoring, app.ledger, app.access,
		governance.WithLogger(app.addLogger(config.GovernanceLogger)),
		governance.WithConfig(app.Config.Governance),
		governance.WithClock(app.clock),
		governance.WithReporter(app.reporter),
	)
	if err != nil {
		return fmt.Errorf("governance: %w", err)
	}
	app.executor = governance.NewExecutor(app.governance)
	return nil
}

func (app *App) setupDBs() error {
	dbPath := app.Config.DataDir()
	if err := os.MkdirAll(dbPath, 0o700); err != nil {
		return log.ErrEnsureDataDir(dbPath, err)
	}
	dbLog := app.addLogger(config.DatabaseLogger)
	opts := []sql.Opt{
		sql.WithLogger(dbLog),
		sql.WithConnections(app.Config.DatabaseConnections),
		sql.WithLatencyMetering(app.Config.DatabaseLatencyMetering),
	}
	ledgerDB, err := ledgersql.Open("file:"+filepath.Join(dbPath, config.LedgerDBFile), opts...)
	if err != nil {
		return log.ErrOpenDatabase(err)
	}
	app.ledgerDB = ledgerDB
	stateDB, err := statesql.Open("file:"+filepath.Join(dbPath, config.StateDBFile), opts...)
	if err != nil {
		return log.ErrOpenDatabase(err)
	}
	app.stateDB = stateDB
	return nil
}

// Start runs background services until ctx is canceled or one of them fails.
func (app *App) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return app.executor.Run(ctx)
	})
	if app.Config.CollectMetrics {
		srv := metrics.NewServer(fmt.Sprintf(":%d", app.Config.MetricsPort), app.addLogger(config.MetricsLogger))
		eg.Go(func() error {
			return srv.Run(ctx)
		})
	}
	if app.Config.MetricsPush.Enabled() {
		instance, err := os.Hostname()
		if err != nil {
			instance = "peo"
		}
		logger := app.addLogger(config.MetricsLogger)
		eg.Go(func() error {
			return metrics.PushMetrics(ctx, logger, app.Config.MetricsPush, instance)
		})
	}
	sub := app.reporter.Subscribe(eventsBufferSize)
	logger := app.addLogger(config.AppLogger)
	eg.Go(func() error {
		defer app.reporter.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-sub:
				logger.Debug("event", zap.String("type", string(ev.Type)), zap.Any("details", ev.Details))
			}
		}
	})
	app.log.Info("peocoin node started")
	return eg.Wait()
}

// Cleanup closes databases.
func (app *App) Cleanup(ctx context.Context) {
	app.log.Info("app cleanup starting...")
	for _, db := range []*sql.Database{app.stateDB, app.ledgerDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil {
			app.log.Warn("failed to close database", zap.Error(err))
		}
	}
	app.stateDB, app.ledgerDB = nil, nil
	app.log.Info("app cleanup completed")
}

func (app *App) getAppInfo() string {
	return fmt.Sprintf(
		"App version: %s. Git: %s - %s . Go Version: %s. OS: %s-%s",
		cmd.Version,
		cmd.Branch,
		cmd.Commit,
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
