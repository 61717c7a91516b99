package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"github.com/goodnatureofminers/regtest-walkthrough/pkg/safe"
)

// ErrOutputNotFound is returned when no output pays the expected address.
var ErrOutputNotFound = errors.New("output not found")

// FindPayment returns the first output paying address.
func FindPayment(outputs []model.TransactionOutput, address string) (model.TransactionOutput, error) {
	for _, out := range outputs {
		if out.Address != "" && out.Address == address {
			return out, nil
		}
	}
	return model.TransactionOutput{}, fmt.Errorf("%w: no output pays %s", ErrOutputNotFound, address)
}

// FindChange returns the first output with a standard destination other than paymentAddress.
// Outputs without a derivable address are skipped. A transfer without change yields false.
func FindChange(outputs []model.TransactionOutput, paymentAddress string) (model.TransactionOutput, bool) {
	for _, out := range outputs {
		if out.Address == "" || out.Address == paymentAddress {
			continue
		}
		return out, true
	}
	return model.TransactionOutput{}, false
}

// TotalValue sums output values.
func TotalValue(outputs []model.TransactionOutput) (btcutil.Amount, error) {
	values := make([]btcutil.Amount, 0, len(outputs))
	for _, out := range outputs {
		values = append(values, out.Value)
	}
	total, err := safe.Sum(values...)
	if err != nil {
		return 0, fmt.Errorf("sum outputs: %w", err)
	}
	return total, nil
}

// InputAmount derives the spent amount as outputs plus fee.
func InputAmount(outputs []model.TransactionOutput, fee btcutil.Amount) (btcutil.Amount, error) {
	if fee < 0 {
		return 0, fmt.Errorf("negative fee %d", fee)
	}
	total, err := TotalValue(outputs)
	if err != nil {
		return 0, err
	}
	amount, err := safe.Add(total, fee)
	if err != nil {
		return 0, fmt.Errorf("add fee: %w", err)
	}
	return amount, nil
}
