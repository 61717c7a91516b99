// Package report renders walkthrough reports and delivers them to their destinations.
package report

import (
	"strconv"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

// noChangeAmount is written in place of the change amount when there is no change output.
const noChangeAmount = "0"

// Lines renders r as the ten positional report lines:
// txid, input address, input amount, trader address, trader amount,
// change address, change amount, fee, block height and block hash.
func Lines(r model.Report) []string {
	changeAddress, changeAmount := model.NoChange, noChangeAmount
	if r.HasChange() {
		changeAddress = r.MinerChangeAddress
		changeAmount = bitcoin.FormatBTC(r.MinerChangeAmount)
	}

	return []string{
		r.TxID,
		r.MinerInputAddress,
		bitcoin.FormatBTC(r.MinerInputAmount),
		r.TraderOutputAddress,
		bitcoin.FormatBTC(r.TraderOutputAmount),
		changeAddress,
		changeAmount,
		bitcoin.FormatBTC(r.Fee),
		strconv.FormatInt(r.BlockHeight, 10),
		r.BlockHash,
	}
}
