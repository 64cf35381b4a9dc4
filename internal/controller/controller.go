package controller

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/poolwatch/poolfee-backend/internal/binance"
	"github.com/poolwatch/poolfee-backend/internal/etherscan"
	"github.com/poolwatch/poolfee-backend/internal/model"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

// priceSymbol is the pair used to denominate fees.
const priceSymbol = "ETHUSDT"

type Controller struct {
	etherscan etherscan.IEtherscan
	binance   binance.IBinance
	logger    *logger.Logger
}

func New(etherscan etherscan.IEtherscan, binance binance.IBinance, logger *logger.Logger) IController {
	return &Controller{
		etherscan: etherscan,
		binance:   binance,
		logger:    logger,
	}
}

func (c *Controller) EnrichTransactions(ctx context.Context, txs []model.PoolTransaction) ([]model.PoolTransaction, error) {
	enriched := make([]model.PoolTransaction, len(txs))

	g, ctx := errgroup.WithContext(ctx)
	for i, tx := range txs {
		g.Go(func() error {
			price, err := c.binance.GetPriceAtTimestamp(ctx, tx.Timestamp, priceSymbol)
			if err != nil {
				return err
			}

			tx.UsdtFee = price * tx.EthFee
			enriched[i] = tx
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Error("[EnrichTransactions][GetPriceAtTimestamp]", map[string]string{
			"error": err.Error(),
			"batch": strconv.Itoa(len(txs)),
		})
		return nil, err
	}

	return enriched, nil
}

func (c *Controller) GetTransactionsInRange(ctx context.Context, q RangeQuery) ([]model.PoolTransaction, error) {
	startBlock, err := c.etherscan.GetBlockNumberByTimestamp(ctx, q.Start)
	if err != nil {
		c.logger.Error("[GetTransactionsInRange][GetBlockNumberByTimestamp]", map[string]string{
			"error":     err.Error(),
			"timestamp": strconv.FormatInt(q.Start, 10),
		})
		return nil, err
	}

	endBlock, err := c.etherscan.GetBlockNumberByTimestamp(ctx, q.End)
	if err != nil {
		c.logger.Error("[GetTransactionsInRange][GetBlockNumberByTimestamp]", map[string]string{
			"error":     err.Error(),
			"timestamp": strconv.FormatInt(q.End, 10),
		})
		return nil, err
	}

	txs, err := c.etherscan.GetTransactions(ctx, etherscan.TransactionQuery{
		StartBlock: startBlock,
		EndBlock:   endBlock,
		Pool:       q.Pool,
		Page:       q.Page,
		Offset:     q.Offset,
	})
	if err != nil {
		c.logger.Error("[GetTransactionsInRange][GetTransactions]", map[string]string{
			"error": err.Error(),
			"pool":  q.Pool,
		})
		return nil, err
	}

	return c.EnrichTransactions(ctx, txs)
}
