package model

import "github.com/btcsuite/btcd/btcutil"

// NoChange is written in place of the change address when a transfer produced no change output.
const NoChange = "None"

// Report is the record persisted after a confirmed transfer.
// Field order matches the positional report layout.
type Report struct {
	Network             Network
	TxID                string
	MinerInputAddress   string
	MinerInputAmount    btcutil.Amount
	TraderOutputAddress string
	TraderOutputAmount  btcutil.Amount
	MinerChangeAddress  string
	MinerChangeAmount   btcutil.Amount
	Fee                 btcutil.Amount
	BlockHeight         int64
	BlockHash           string
}

// HasChange reports whether the transfer produced a change output.
func (r Report) HasChange() bool {
	return r.MinerChangeAddress != ""
}
