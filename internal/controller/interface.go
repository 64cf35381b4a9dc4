package controller

import (
	"context"

	"github.com/poolwatch/poolfee-backend/internal/model"
)

// RangeQuery is a validated client time range plus pass-through pagination.
type RangeQuery struct {
	Start  int64
	End    int64
	Pool   string
	Page   int
	Offset int
}

type IController interface {
	// EnrichTransactions attaches a USDT fee to every transaction using the
	// ETHUSDT price at its mined second. All lookups of a batch run
	// concurrently; input order is preserved; any failed lookup fails the
	// whole batch.
	EnrichTransactions(ctx context.Context, txs []model.PoolTransaction) ([]model.PoolTransaction, error)

	// GetTransactionsInRange resolves the time range to blocks, fetches the
	// requested page of transfer events and enriches them.
	GetTransactionsInRange(ctx context.Context, q RangeQuery) ([]model.PoolTransaction, error)
}
