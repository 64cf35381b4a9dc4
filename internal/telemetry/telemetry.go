package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/controller"
	"github.com/poolwatch/poolfee-backend/internal/etherscan"
	"github.com/poolwatch/poolfee-backend/internal/model"
	"github.com/poolwatch/poolfee-backend/internal/store"
	"github.com/poolwatch/poolfee-backend/internal/utils/config"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

type Telemetry struct {
	db         *gorm.DB
	store      *store.Store
	etherscan  etherscan.IEtherscan
	controller controller.IController
	appConfig  *config.AppConfig
	logger     *logger.Logger

	now func() time.Time
}

func New(db *gorm.DB, store *store.Store, etherscan etherscan.IEtherscan, controller controller.IController, appConfig *config.AppConfig, logger *logger.Logger) *Telemetry {
	return &Telemetry{
		db:         db,
		store:      store,
		etherscan:  etherscan,
		controller: controller,
		appConfig:  appConfig,
		logger:     logger,
		now:        time.Now,
	}
}

func (t *Telemetry) IndexPoolTransactions(pool string) error {
	t.logger.Info("[IndexPoolTransactions] Start indexing pool transactions...", map[string]string{
		"pool": pool,
	})

	start, end, err := t.computeWindow(pool)
	if err != nil {
		return err
	}

	ctx := context.Background()

	startBlock, err := t.etherscan.GetBlockNumberByTimestamp(ctx, start)
	if err != nil {
		t.logger.Error("[IndexPoolTransactions][GetBlockNumberByTimestamp]", map[string]string{
			"error":     err.Error(),
			"timestamp": strconv.FormatInt(start, 10),
		})
		return err
	}

	endBlock, err := t.etherscan.GetBlockNumberByTimestamp(ctx, end)
	if err != nil {
		t.logger.Error("[IndexPoolTransactions][GetBlockNumberByTimestamp]", map[string]string{
			"error":     err.Error(),
			"timestamp": strconv.FormatInt(end, 10),
		})
		return err
	}

	txs, err := t.etherscan.GetAllTransactions(ctx, startBlock, endBlock, pool)
	if err != nil {
		t.logger.Error("[IndexPoolTransactions][GetAllTransactions]", map[string]string{
			"error": err.Error(),
			"pool":  pool,
		})
		return err
	}

	if len(txs) == 0 {
		t.logger.Info("[IndexPoolTransactions] No new transactions found.", map[string]string{
			"pool": pool,
		})
		return nil
	}

	enriched, err := t.controller.EnrichTransactions(ctx, txs)
	if err != nil {
		t.logger.Error("[IndexPoolTransactions][EnrichTransactions]", map[string]string{
			"error": err.Error(),
			"pool":  pool,
		})
		return err
	}

	result := t.store.PoolTransaction.CreateBatch(t.db, enriched)
	for _, failed := range result.Failed {
		t.logger.Error("[IndexPoolTransactions][CreateBatch]", map[string]string{
			"hash":  failed.Hash,
			"error": failed.Reason,
		})
	}

	t.logger.Info(fmt.Sprintf("[IndexPoolTransactions] Persisted %d transactions (%d failed)", result.Inserted, len(result.Failed)), map[string]string{
		"pool": pool,
	})

	return nil
}

// computeWindow derives the ingestion window for this tick: the window ends
// now and starts at the last persisted timestamp, clamped so it never reaches
// further back than the look-back ceiling.
func (t *Telemetry) computeWindow(pool string) (int64, int64, error) {
	end := t.now().Unix()
	start := end - t.appConfig.Indexer.LookbackSeconds

	latest, err := t.store.PoolTransaction.MostRecentTimestamp(t.db, pool)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.logger.Error("[IndexPoolTransactions][MostRecentTimestamp]", map[string]string{
				"error": err.Error(),
				"pool":  pool,
			})
			return 0, 0, &model.PersistenceError{Op: "most recent timestamp", Err: err}
		}
		return start, end, nil
	}

	if latest > start {
		start = latest
	}

	return start, end, nil
}
