package binance

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

const capabilityName = "binance"

type binance struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

func New(cfg *config.AppConfig, logger *logger.Logger) IBinance {
	return &binance{
		baseURL: cfg.Binance.APIURL,
		client:  &http.Client{},
		logger:  logger,
	}
}

func (c *binance) GetPriceAtTimestamp(ctx context.Context, timestamp int64, symbol string) (float64, error) {
	millis := strconv.FormatInt(timestamp*1000, 10)

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", "1s")
	params.Set("startTime", millis)
	params.Set("endTime", millis)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "failed to create request"),
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("[GetPriceAtTimestamp][client.Do]", map[string]string{
			"error":     err.Error(),
			"symbol":    symbol,
			"timestamp": strconv.FormatInt(timestamp, 10),
		})
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "request failed"),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "failed to read response body"),
		}
	}

	if resp.StatusCode != http.StatusOK {
		// Binance reports semantic failures as {"code":...,"msg":"..."}.
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
			return 0, &model.UpstreamDomainError{Capability: capabilityName, Message: apiErr.Msg}
		}
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return parseOpenPrice(body)
}

// parseOpenPrice extracts the open price (second column) of the first kline.
// Klines arrive as rows of mixed-type JSON arrays.
func parseOpenPrice(body []byte) (float64, error) {
	var klines [][]json.RawMessage
	if err := json.Unmarshal(body, &klines); err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "unexpected kline response shape"),
		}
	}

	// An empty list is a well-formed answer: Binance has no candle for that
	// second. That is a semantic miss, not a transport failure.
	if len(klines) == 0 {
		return 0, &model.UpstreamDomainError{
			Capability: capabilityName,
			Message:    "no kline interval covers the requested timestamp",
		}
	}

	if len(klines[0]) < 2 {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.New("unexpected kline row shape"),
		}
	}

	var openPriceStr string
	if err := json.Unmarshal(klines[0][1], &openPriceStr); err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrap(err, "unexpected open price shape"),
		}
	}

	openPrice, err := strconv.ParseFloat(openPriceStr, 64)
	if err != nil {
		return 0, &model.UpstreamTransportError{
			Capability: capabilityName,
			Err:        errors.Wrapf(err, "unexpected open price %q", openPriceStr),
		}
	}

	return openPrice, nil
}
