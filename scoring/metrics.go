package scoring

import (
	"github.com/peocoin/go-peocoin/common/types"
	"github.com/peocoin/go-peocoin/metrics"
)

const namespace = "scoring"

var (
	weightGauge = metrics.NewGauge(
		"weight",
		namespace,
		"weight of each score term",
		[]string{"term"},
	)
	tokenWeight    = weightGauge.WithLabelValues("token")
	stakeWeight    = weightGauge.WithLabelValues("stake")
	durationWeight = weightGauge.WithLabelValues("duration")

	scoreQueries = metrics.NewCounter(
		"queries",
		namespace,
		"number of computed scores",
		[]string{},
	).WithLabelValues()
)

func setWeightGauges(w types.ScoreWeights) {
	tokenWeight.Set(float64(w.Token))
	stakeWeight.Set(float64(w.Stake))
	durationWeight.Set(float64(w.Duration))
}
