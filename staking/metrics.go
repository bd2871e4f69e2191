package staking

import "github.com/peocoin/go-peocoin/metrics"

const namespace = "staking"

var (
	stakedGauge = metrics.NewGauge(
		"staked",
		namespace,
		"total principal locked in custody, in tokens",
		[]string{},
	).WithLabelValues()
	activeStakes = metrics.NewGauge(
		"active",
		namespace,
		"number of active stakes",
		[]string{},
	).WithLabelValues()

	operations = metrics.NewCounter(
		"operations",
		namespace,
		"successful staking operations",
		[]string{"op"},
	)
	stakeOps   = operations.WithLabelValues("stake")
	unstakeOps = operations.WithLabelValues("unstake")
	fundOps    = operations.WithLabelValues("fund")

	rewardsPaid = metrics.NewCounter(
		"rewards_paid",
		namespace,
		"rewards paid out of custody, in tokens",
		[]string{},
	).WithLabelValues()
	underfunded = metrics.NewCounter(
		"underfunded",
		namespace,
		"unstakes rejected because custody could not cover the payout",
		[]string{},
	).WithLabelValues()
)
