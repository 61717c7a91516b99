package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

// Address labels used in the miner and trader wallets.
const (
	RewardLabel  = "Mining Reward"
	ReceiveLabel = "Received"
)

// RPCConfig locates the node endpoint. Wallet sessions append /wallet/<name> to URL.
type RPCConfig struct {
	URL      string
	User     string
	Password string
	// RPS caps outgoing calls per session; zero means unlimited.
	RPS int
}

// Config carries every setting of a walkthrough run.
type Config struct {
	RPC            RPCConfig
	Network        model.Network
	MinerWallet    string
	TraderWallet   string
	MaturityBlocks int64
	ConfirmBlocks  int64
	Amount         btcutil.Amount
	OutputPath     string
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.RPC.URL == "" {
		return errors.New("rpc url is required")
	}
	u, err := url.Parse(c.RPC.URL)
	if err != nil {
		return fmt.Errorf("rpc url: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("rpc url %q has no host", c.RPC.URL)
	}
	if c.RPC.RPS < 0 {
		return fmt.Errorf("rpc rps must not be negative, got %d", c.RPC.RPS)
	}
	if c.Network == "" {
		return errors.New("network is required")
	}
	if c.MinerWallet == "" || c.TraderWallet == "" {
		return errors.New("miner and trader wallet names are required")
	}
	if c.MinerWallet == c.TraderWallet {
		return fmt.Errorf("miner and trader wallets must differ, both are %q", c.MinerWallet)
	}
	if c.MaturityBlocks <= 0 {
		return fmt.Errorf("maturity blocks must be positive, got %d", c.MaturityBlocks)
	}
	if c.ConfirmBlocks <= 0 {
		return fmt.Errorf("confirm blocks must be positive, got %d", c.ConfirmBlocks)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %s", c.Amount)
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	return nil
}
