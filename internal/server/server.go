package server

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/poolwatch/poolfee-backend/internal/binance"
	"github.com/poolwatch/poolfee-backend/internal/controller"
	"github.com/poolwatch/poolfee-backend/internal/etherscan"
	"github.com/poolwatch/poolfee-backend/internal/handler"
	"github.com/poolwatch/poolfee-backend/internal/monitoring"
	"github.com/poolwatch/poolfee-backend/internal/store"
	pgstore "github.com/poolwatch/poolfee-backend/internal/store/postgres"
	"github.com/poolwatch/poolfee-backend/internal/telemetry"
	"github.com/poolwatch/poolfee-backend/internal/transport/http"
	"github.com/poolwatch/poolfee-backend/internal/utils/config"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)
	s := store.New()

	etherscanClient := etherscan.New(appConfig, logger)
	binanceClient := binance.New(appConfig, logger)
	ctrl := controller.New(etherscanClient, binanceClient, logger)
	indexer := telemetry.New(db, s, etherscanClient, ctrl, appConfig, logger)

	registry := prometheus.NewRegistry()
	httpMetrics := monitoring.NewHTTPMetrics(registry)
	jobMetrics := monitoring.NewJobMetrics(registry)

	// The scheduler handle is owned here; indexing errors are logged inside
	// the job and never stop the timer.
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", appConfig.Indexer.Period), func() {
		start := time.Now()
		err := indexer.IndexPoolTransactions(appConfig.Indexer.Pool)
		jobMetrics.RecordRun("index_pool_transactions", err, time.Since(start))
	})
	if err != nil {
		logger.Fatal("failed to schedule pool transaction indexing", map[string]string{
			"error":  err.Error(),
			"period": appConfig.Indexer.Period,
		})
	}
	c.Start()
	defer c.Stop()

	h := handler.New(ctrl, binanceClient, s, db, logger)
	httpServer := http.NewHttpServer(appConfig, h, httpMetrics, registry)

	if err := httpServer.Run(":" + appConfig.ApiServer.Port); err != nil {
		logger.Fatal("failed to run http server", map[string]string{
			"error": err.Error(),
		})
	}
}
