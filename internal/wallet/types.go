package wallet

import "github.com/btcsuite/btcd/btcjson"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeClient is the unscoped node session used to manage wallets.
	NodeClient interface {
		CreateWallet(name string) (*btcjson.CreateWalletResult, error)
		LoadWallet(name string) (*btcjson.LoadWalletResult, error)
	}
)
