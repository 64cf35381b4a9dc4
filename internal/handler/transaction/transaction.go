package transaction

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/binance"
	"github.com/poolwatch/poolfee-backend/internal/controller"
	"github.com/poolwatch/poolfee-backend/internal/model"
	"github.com/poolwatch/poolfee-backend/internal/store"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
	"github.com/poolwatch/poolfee-backend/internal/view"
)

const (
	defaultLivePage     = 1
	defaultLivePageSize = 50
)

type handler struct {
	controller controller.IController
	binance    binance.IBinance
	store      *store.Store
	db         *gorm.DB
	logger     *logger.Logger
}

func New(controller controller.IController, binance binance.IBinance, store *store.Store, db *gorm.DB, logger *logger.Logger) IHandler {
	return &handler{
		controller: controller,
		binance:    binance,
		store:      store,
		db:         db,
		logger:     logger,
	}
}

// GetTransactionsInRange godoc
// @Summary Get pool transactions for a time range
// @Description Resolves the time range to blocks and returns enriched swap-fee transactions
// @id getTransactionsInRange
// @Tags Transaction
// @Produce json
// @Param start query string true "range start, unix seconds"
// @Param end query string true "range end, unix seconds"
// @Param pool query string true "pool identifier, e.g. WETH-USDC"
// @Param page query int false "page number"
// @Param offset query int false "page size"
// @Success 200 {object} view.ResultResponse[[]model.PoolTransaction]
// @Failure 400 {object} view.ErrorResponse
// @Failure 500 {object} view.ErrorResponse
// @Router /transactions [get]
func (h *handler) GetTransactionsInRange(c *gin.Context) {
	query, err := parseRangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateErrorResponse(err.Error()))
		return
	}

	result, err := h.controller.GetTransactionsInRange(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("[GetTransactionsInRange]", map[string]string{
			"error": err.Error(),
			"pool":  query.Pool,
		})
		c.JSON(http.StatusInternalServerError, view.CreateErrorResponse("Error fetching transactions: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(result))
}

// GetLiveTransactions godoc
// @Summary Get recently ingested pool transactions
// @Description Returns persisted transactions for a pool, newest first
// @id getLiveTransactions
// @Tags Transaction
// @Produce json
// @Param pool query string true "pool identifier, e.g. WETH-USDC"
// @Param page query int false "page number, defaults to 1"
// @Param offset query int false "page size, defaults to 50"
// @Success 200 {object} view.ResultResponse[[]model.PoolTransaction]
// @Failure 400 {object} view.ErrorResponse
// @Failure 500 {object} view.ErrorResponse
// @Router /transactions/live [get]
func (h *handler) GetLiveTransactions(c *gin.Context) {
	pool, err := parseLivePool(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateErrorResponse(err.Error()))
		return
	}

	pageNumber := intQueryWithDefault(c, "page", defaultLivePage)
	pageSize := intQueryWithDefault(c, "offset", defaultLivePageSize)

	result, err := h.store.PoolTransaction.List(h.db, pool, pageNumber, pageSize)
	if err != nil {
		h.logger.Error("[GetLiveTransactions][List]", map[string]string{
			"error": err.Error(),
			"pool":  pool,
		})
		c.JSON(http.StatusInternalServerError, view.CreateErrorResponse("Error fetching live transactions: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(result))
}

// GetPrice godoc
// @Summary Get the spot price of a pair at a timestamp
// @Description Returns the 1s-kline open price covering the given second
// @id getPrice
// @Tags Transaction
// @Produce json
// @Param time query string true "unix seconds"
// @Param symbol query string true "trading pair, e.g. ETHUSDT"
// @Success 200 {object} view.ResultResponse[view.PriceView]
// @Failure 400 {object} view.ErrorResponse
// @Failure 500 {object} view.ErrorResponse
// @Router /transactions/price [get]
func (h *handler) GetPrice(c *gin.Context) {
	timestamp, symbol, err := parsePriceQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateErrorResponse(err.Error()))
		return
	}

	price, err := h.binance.GetPriceAtTimestamp(c.Request.Context(), timestamp, symbol)
	if err != nil {
		h.logger.Error("[GetPrice][GetPriceAtTimestamp]", map[string]string{
			"error":  err.Error(),
			"symbol": symbol,
		})
		c.JSON(http.StatusInternalServerError, view.CreateErrorResponse("Error fetching price: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(view.PriceView{Price: price}))
}

// parseRangeQuery validates the range-endpoint parameters. Failures come
// back as *model.ValidationError whose message goes into the 400 body.
func parseRangeQuery(c *gin.Context) (controller.RangeQuery, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	pool := c.Query("pool")

	if startStr == "" || endStr == "" || pool == "" {
		return controller.RangeQuery{}, &model.ValidationError{Message: "Missing required parameters"}
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return controller.RangeQuery{}, &model.ValidationError{Message: "Invalid timestamp"}
	}

	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return controller.RangeQuery{}, &model.ValidationError{Message: "Invalid timestamp"}
	}

	if start >= end {
		return controller.RangeQuery{}, &model.ValidationError{Message: "'start' timestamp must be earlier than 'end' timestamp"}
	}

	return controller.RangeQuery{
		Start:  start,
		End:    end,
		Pool:   pool,
		Page:   intQueryWithDefault(c, "page", 0),
		Offset: intQueryWithDefault(c, "offset", 0),
	}, nil
}

func parseLivePool(c *gin.Context) (string, error) {
	pool := c.Query("pool")
	if pool == "" {
		return "", &model.ValidationError{Message: "Missing required parameters"}
	}

	return pool, nil
}

func parsePriceQuery(c *gin.Context) (int64, string, error) {
	timeStr := c.Query("time")
	symbol := c.Query("symbol")

	if timeStr == "" || symbol == "" {
		return 0, "", &model.ValidationError{Message: "Missing required parameters"}
	}

	timestamp, err := strconv.ParseInt(timeStr, 10, 64)
	if err != nil {
		return 0, "", &model.ValidationError{Message: "Invalid timestamp"}
	}

	return timestamp, symbol, nil
}

// intQueryWithDefault falls back to the default when the parameter is absent
// or not numeric.
func intQueryWithDefault(c *gin.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}
