package governance

import "github.com/peocoin/go-peocoin/metrics"

const namespace = "governance"

var (
	proposalsCreated = metrics.NewCounter(
		"proposals_created",
		namespace,
		"number of created proposals",
		[]string{},
	).WithLabelValues()

	votes = metrics.NewCounter(
		"votes",
		namespace,
		"votes cast by support",
		[]string{"support"},
	)
	yesVotes = votes.WithLabelValues("yes")
	noVotes  = votes.WithLabelValues("no")

	executions = metrics.NewCounter(
		"executions",
		namespace,
		"execution attempts on closed proposals by outcome",
		[]string{"outcome"},
	)
	executed    = executions.WithLabelValues("executed")
	notExecuted = executions.WithLabelValues("failed")

	executorRuns = metrics.NewHistogramWithBuckets(
		"executor_run_seconds",
		namespace,
		"duration of a single executor pass",
		[]string{},
		[]float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	).WithLabelValues()
)
