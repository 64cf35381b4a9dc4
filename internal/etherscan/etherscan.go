package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/poolwatch/poolfee-backend/internal/model"
	"github.com/poolwatch/poolfee-backend/internal/utils/config"
	"github.com/poolwatch/poolfee-backend/internal/utils/logger"
)

const (
	capabilityName = "etherscan"

	defaultPage   = 1
	defaultOffset = 100

	// Etherscan's status-"0" marker for an empty result page.
	noTransactionsFound = "No transactions found"
)

type etherscan struct {
	baseURL  string
	apiKey   string
	maxPages int
	client   *http.Client
	logger   *logger.Logger
}

func New(cfg *config.AppConfig, logger *logger.Logger) IEtherscan {
	return &etherscan{
		baseURL:  cfg.Etherscan.APIURL,
		apiKey:   cfg.Etherscan.APIKey,
		maxPages: cfg.Etherscan.MaxPages,
		client:   &http.Client{},
		logger:   logger,
	}
}

func (c *etherscan) GetBlockNumberByTimestamp(ctx context.Context, timestamp int64) (int64, error) {
	params := url.Values{}
	params.Set("module", "block")
	params.Set("action", "getblocknobytime")
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	params.Set("closest", "after")
	params.Set("apikey", c.apiKey)

	body, err := c.get(ctx, params)
	if err != nil {
		c.logger.Error("[GetBlockNumberByTimestamp][get]", map[string]string{
			"error":     err.Error(),
			"timestamp": strconv.FormatInt(timestamp, 10),
		})
		return 0, &model.UpstreamTransportError{Capability: capabilityName, Err: err}
	}

	var response blockNumberResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "failed to parse block number response"),
		}
	}

	// status "0" is Etherscan's explicit rejection; the result field holds
	// its message and must be surfaced verbatim.
	if response.Status == "0" {
		return 0, &model.UpstreamDomainError{Capability: capabilityName, Message: response.Result}
	}

	blockNumber, err := strconv.ParseInt(response.Result, 10, 64)
	if err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrapf(err, "unexpected block number %q", response.Result),
		}
	}

	return blockNumber, nil
}

func (c *etherscan) GetTransactions(ctx context.Context, q TransactionQuery) ([]model.PoolTransaction, error) {
	address, err := getContractAddress(q.Pool)
	if err != nil {
		return nil, err
	}

	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.Offset == 0 {
		q.Offset = defaultOffset
	}

	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "tokentx")
	params.Set("address", address.Hex())
	params.Set("startblock", strconv.FormatInt(q.StartBlock, 10))
	params.Set("endblock", strconv.FormatInt(q.EndBlock, 10))
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("sort", "desc")
	params.Set("apikey", c.apiKey)

	body, err := c.get(ctx, params)
	if err != nil {
		c.logger.Error("[GetTransactions][get]", map[string]string{
			"error": err.Error(),
			"pool":  q.Pool,
			"page":  strconv.Itoa(q.Page),
		})
		return nil, &model.UpstreamTransportError{Capability: capabilityName, Err: err}
	}

	var response tokenTxResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "failed to parse transaction response"),
		}
	}

	var events []tokenTransferEvent
	if err := json.Unmarshal(response.Result, &events); err != nil {
		// On status "0" the result field is a string, not a list. Past the
		// last page that string is "No transactions found"; anything else
		// (rate limiting, bad key) is a real rejection and must surface
		// verbatim, never read as end-of-pagination.
		var message string
		if response.Status == "0" && json.Unmarshal(response.Result, &message) == nil {
			if message == noTransactionsFound {
				return []model.PoolTransaction{}, nil
			}
			return nil, &model.UpstreamDomainError{Capability: capabilityName, Message: message}
		}
		return nil, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "unexpected transaction result shape"),
		}
	}

	txs := make([]model.PoolTransaction, 0, len(events))
	for _, event := range events {
		tx, err := toPoolTransaction(q.Pool, event)
		if err != nil {
			return nil, &model.UpstreamTransportError{Capability: capabilityName, Err: err}
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

func (c *etherscan) GetAllTransactions(ctx context.Context, startBlock, endBlock int64, pool string) ([]model.PoolTransaction, error) {
	transactions := []model.PoolTransaction{}
	for page := 1; ; page++ {
		if page > c.maxPages {
			return nil, &model.UpstreamTransportError{
				Capability: capabilityName,
				Err:        errors.Errorf("page count exceeded limit of %d", c.maxPages),
			}
		}

		result, err := c.GetTransactions(ctx, TransactionQuery{
			StartBlock: startBlock,
			EndBlock:   endBlock,
			Pool:       pool,
			Page:       page,
		})
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			break
		}

		transactions = append(transactions, result...)
	}

	return transactions, nil
}

func (c *etherscan) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}

func toPoolTransaction(pool string, event tokenTransferEvent) (model.PoolTransaction, error) {
	blockNumber, err := strconv.ParseInt(event.BlockNumber, 10, 64)
	if err != nil {
		return model.PoolTransaction{}, errors.Wrapf(err, "unexpected block number %q", event.BlockNumber)
	}

	timestamp, err := strconv.ParseInt(event.TimeStamp, 10, 64)
	if err != nil {
		return model.PoolTransaction{}, errors.Wrapf(err, "unexpected timestamp %q", event.TimeStamp)
	}

	gasUsed, err := strconv.ParseFloat(event.GasUsed, 64)
	if err != nil {
		return model.PoolTransaction{}, errors.Wrapf(err, "unexpected gas used %q", event.GasUsed)
	}

	gasPrice, err := strconv.ParseFloat(event.GasPrice, 64)
	if err != nil {
		return model.PoolTransaction{}, errors.Wrapf(err, "unexpected gas price %q", event.GasPrice)
	}

	return model.PoolTransaction{
		Pool:        pool,
		BlockNumber: blockNumber,
		Timestamp:   timestamp,
		Hash:        event.Hash,
		EthFee:      ethFromGas(gasUsed, gasPrice),
	}, nil
}
