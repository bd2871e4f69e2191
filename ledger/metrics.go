package ledger

import "github.com/peocoin/go-peocoin/metrics"

const namespace = "ledger"

var supplyGauge = metrics.NewGauge(
	"supply",
	namespace,
	"total supply in tokens",
	[]string{},
).WithLabelValues()
