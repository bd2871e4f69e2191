package governance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peocoin/go-peocoin/log"
	"github.com/peocoin/go-peocoin/sql/proposals"
)

// Executor periodically executes proposals whose voting has closed.
type Executor struct {
	logger *zap.Logger
	engine *Engine
}

// NewExecutor creates an executor for proposals of the engine.
func NewExecutor(engine *Engine) *Executor {
	return &Executor{
		logger: engine.logger.Named("executor"),
		engine: engine,
	}
}

// Run executes closed proposals every ExecuteInterval until ctx is canceled.
func (x *Executor) Run(ctx context.Context) error {
	ticker := x.engine.clock.NewTicker(x.engine.cfg.ExecuteInterval)
	defer ticker.Stop()
	x.logger.Info("started proposals executor", zap.Duration("interval", x.engine.cfg.ExecuteInterval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if _, err := x.ExecuteClosed(ctx); err != nil {
				x.logger.Warn("failed to execute closed proposals", zap.Error(err))
			}
		}
	}
}

// ExecuteClosed makes one pass over closed proposals and returns the number of executed ones.
// Errors on individual proposals are logged and the proposal is retried on the next pass.
func (x *Executor) ExecuteClosed(ctx context.Context) (int, error) {
	e := x.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() { executorRuns.Observe(time.Since(start).Seconds()) }()

	now := e.clock.Now()
	closed, err := proposals.Closed(e.db, now)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range closed {
		ok, err := e.execute(ctx, p.ID, now)
		switch {
		case err != nil:
			x.logger.Warn("failed to execute proposal", log.ZProposal(p.ID), zap.Error(err))
		case ok:
			n++
		}
	}
	return n, nil
}
