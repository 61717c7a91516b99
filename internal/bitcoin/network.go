// Package bitcoin implements Bitcoin-specific decoding and classification logic.
package bitcoin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

// ErrWrongNetwork is returned when an address is valid but belongs to another network.
var ErrWrongNetwork = errors.New("address belongs to another network")

// ChainParams returns consensus params for the provided network name.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

// RequireNetwork checks that addr is usable on the network described by params.
func RequireNetwork(addr btcutil.Address, params *chaincfg.Params) error {
	if addr == nil {
		return errors.New("address is nil")
	}
	if !addr.IsForNet(params) {
		return fmt.Errorf("%w: %s is not a %s address", ErrWrongNetwork, addr.EncodeAddress(), params.Name)
	}
	return nil
}
