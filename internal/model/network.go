// Package model defines domain models for the regtest walkthrough.
package model

// Network names the chain the node runs on.
type Network string

var (
	Regtest Network = "regtest"
	Testnet Network = "testnet"
	Signet  Network = "signet"
	Mainnet Network = "mainnet"
)
