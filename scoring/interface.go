package scoring

import (
	"context"
	"math/big"

	"github.com/peocoin/go-peocoin/common/types"
)

//go:generate mockgen -typed -package=scoring -destination=./mocks.go -source=./interface.go

type balanceReader interface {
	BalanceOf(ctx context.Context, addr types.Address) (*big.Int, error)
}

type stakeReader interface {
	GetStake(ctx context.Context, participant types.Address) (*types.Stake, error)
}
