package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/poolwatch/poolfee-backend/internal/controller"
	"github.com/poolwatch/poolfee-backend/internal/model"
	"github.com/poolwatch/poolfee-backend/internal/store"
	"github.com/poolwatch/poolfee-backend/internal/store/pooltransaction"
	"github.com/poolwatch/poolfee-backend/internal/types/environments"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

type fakeController struct {
	result []model.PoolTransaction
	err    error

	lastQuery controller.RangeQuery
}

func (f *fakeController) EnrichTransactions(_ context.Context, txs []model.PoolTransaction) ([]model.PoolTransaction, error) {
	return txs, nil
}

func (f *fakeController) GetTransactionsInRange(_ context.Context, q controller.RangeQuery) ([]model.PoolTransaction, error) {
	f.lastQuery = q
	return f.result, f.err
}

type fakeBinance struct {
	price float64
	err   error
}

func (f *fakeBinance) GetPriceAtTimestamp(_ context.Context, timestamp int64, symbol string) (float64, error) {
	return f.price, f.err
}

type fakeTxStore struct {
	result []model.PoolTransaction
	err    error

	lastPool       string
	lastPageNumber int
	lastPageSize   int
}

func (f *fakeTxStore) MostRecentTimestamp(_ *gorm.DB, pool string) (int64, error) {
	return 0, gorm.ErrRecordNotFound
}

func (f *fakeTxStore) List(_ *gorm.DB, pool string, pageNumber, pageSize int) ([]model.PoolTransaction, error) {
	f.lastPool = pool
	f.lastPageNumber = pageNumber
	f.lastPageSize = pageSize
	return f.result, f.err
}

func (f *fakeTxStore) CreateBatch(_ *gorm.DB, txs []model.PoolTransaction) pooltransaction.BatchResult {
	return pooltransaction.BatchResult{}
}

func newTestRouter(ctrl *fakeController, bn *fakeBinance, txStore *fakeTxStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(ctrl, bn, &store.Store{PoolTransaction: txStore}, nil, logger.New(environments.Test))

	router := gin.New()
	router.GET("/api/v1/transactions", h.GetTransactionsInRange)
	router.GET("/api/v1/transactions/live", h.GetLiveTransactions)
	router.GET("/api/v1/transactions/price", h.GetPrice)

	return router
}

func get(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", url, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestGetTransactionsInRange(t *testing.T) {
	t.Run("returns enriched transactions", func(t *testing.T) {
		ctrl := &fakeController{result: []model.PoolTransaction{
			{Pool: "WETH-USDC", Timestamp: 1728808129, BlockNumber: 150, Hash: "0xfee", EthFee: 0.01, UsdtFee: 20},
		}}
		router := newTestRouter(ctrl, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions?start=1000&end=2000&pool=WETH-USDC&page=1&offset=10")
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Result []model.PoolTransaction `json:"result"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Result, 1)
		assert.Equal(t, 20.0, body.Result[0].UsdtFee)

		assert.Equal(t, controller.RangeQuery{Start: 1000, End: 2000, Pool: "WETH-USDC", Page: 1, Offset: 10}, ctrl.lastQuery)
	})

	t.Run("missing parameters", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required parameters", decodeMessage(t, w))
	})

	t.Run("non-numeric timestamps", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions?start=nope&end=2000&pool=WETH-USDC")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid timestamp", decodeMessage(t, w))
	})

	t.Run("start must be strictly earlier than end", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions?start=2000&end=2000&pool=WETH-USDC")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "'start' timestamp must be earlier than 'end' timestamp", decodeMessage(t, w))
	})

	t.Run("upstream failure becomes a 500", func(t *testing.T) {
		ctrl := &fakeController{err: errors.New("etherscan: unexpected status code: 502")}
		router := newTestRouter(ctrl, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions?start=1000&end=2000&pool=WETH-USDC")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error fetching transactions: etherscan: unexpected status code: 502", decodeMessage(t, w))
	})
}

func TestGetLiveTransactions(t *testing.T) {
	t.Run("passes pagination through to the store", func(t *testing.T) {
		txStore := &fakeTxStore{result: []model.PoolTransaction{}}
		router := newTestRouter(&fakeController{}, &fakeBinance{}, txStore)

		w := get(router, "/api/v1/transactions/live?pool=WETH-USDC&page=2&offset=2")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "WETH-USDC", txStore.lastPool)
		assert.Equal(t, 2, txStore.lastPageNumber)
		assert.Equal(t, 2, txStore.lastPageSize)
	})

	t.Run("defaults page and offset", func(t *testing.T) {
		txStore := &fakeTxStore{result: []model.PoolTransaction{}}
		router := newTestRouter(&fakeController{}, &fakeBinance{}, txStore)

		w := get(router, "/api/v1/transactions/live?pool=WETH-USDC&page=nope")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, txStore.lastPageNumber)
		assert.Equal(t, 50, txStore.lastPageSize)
	})

	t.Run("missing pool", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions/live")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required parameters", decodeMessage(t, w))
	})

	t.Run("store failure becomes a 500", func(t *testing.T) {
		txStore := &fakeTxStore{err: errors.New("connection refused")}
		router := newTestRouter(&fakeController{}, &fakeBinance{}, txStore)

		w := get(router, "/api/v1/transactions/live?pool=WETH-USDC")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error fetching live transactions: connection refused", decodeMessage(t, w))
	})
}

func TestParseQueryValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(url string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request, _ = http.NewRequest("GET", url, nil)
		return c
	}

	t.Run("range rejections are validation errors", func(t *testing.T) {
		for name, url := range map[string]string{
			"missing parameters": "/api/v1/transactions",
			"bad start":          "/api/v1/transactions?start=nope&end=2000&pool=WETH-USDC",
			"bad end":            "/api/v1/transactions?start=1000&end=nope&pool=WETH-USDC",
			"inverted range":     "/api/v1/transactions?start=2000&end=1000&pool=WETH-USDC",
		} {
			_, err := parseRangeQuery(newContext(url))
			require.Error(t, err, name)

			var validationErr *model.ValidationError
			assert.ErrorAs(t, err, &validationErr, name)
		}
	})

	t.Run("missing pool is a validation error", func(t *testing.T) {
		_, err := parseLivePool(newContext("/api/v1/transactions/live"))
		require.Error(t, err)

		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Missing required parameters", validationErr.Message)
	})

	t.Run("bad price time is a validation error", func(t *testing.T) {
		_, _, err := parsePriceQuery(newContext("/api/v1/transactions/price?time=nope&symbol=ETHUSDT"))
		require.Error(t, err)

		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Invalid timestamp", validationErr.Message)
	})
}

func TestGetPrice(t *testing.T) {
	t.Run("returns the price", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{price: 3000}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions/price?time=1728808129&symbol=ETHUSDT")
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Result struct {
				Price float64 `json:"price"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 3000.0, body.Result.Price)
	})

	t.Run("missing parameters", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions/price")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required parameters", decodeMessage(t, w))
	})

	t.Run("non-numeric time", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions/price?time=nope&symbol=ETHUSDT")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid timestamp", decodeMessage(t, w))
	})

	t.Run("lookup failure becomes a 500", func(t *testing.T) {
		router := newTestRouter(&fakeController{}, &fakeBinance{err: errors.New("binance: request failed")}, &fakeTxStore{})

		w := get(router, "/api/v1/transactions/price?time=1728808129&symbol=ETHUSDT")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error fetching price: binance: request failed", decodeMessage(t, w))
	})
}
