package binance

import "context"

type IBinance interface {
	// GetPriceAtTimestamp returns the open price of the 1s kline covering
	// the given unix timestamp (seconds) for a trading pair such as ETHUSDT.
	GetPriceAtTimestamp(ctx context.Context, timestamp int64, symbol string) (float64, error)
}
