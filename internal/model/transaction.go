package model

import "github.com/btcsuite/btcd/btcutil"

// TransactionOutput is a decoded output with the address derived from its script.
type TransactionOutput struct {
	Index   uint32
	Address string
	Value   btcutil.Amount
}

// WalletTransaction is a wallet view of a transaction as returned by gettransaction.
type WalletTransaction struct {
	TxID          string
	Hex           string
	Fee           btcutil.Amount
	Confirmations int64
	BlockHash     string
	BlockHeight   *int64
}

// Confirmed reports whether the transaction carries block metadata.
func (t WalletTransaction) Confirmed() bool {
	return t.BlockHash != "" && t.BlockHeight != nil
}
