package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// AmountFromBTC converts a BTC float reported by the node into satoshis.
func AmountFromBTC(value float64) (btcutil.Amount, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, fmt.Errorf("convert %v btc: %w", value, err)
	}
	return amt, nil
}

// FormatBTC renders an amount as the shortest exact decimal BTC value, e.g. "0.1" or "50".
func FormatBTC(amount btcutil.Amount) string {
	return decimal.New(int64(amount), -8).String()
}
