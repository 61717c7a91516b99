package service

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"github.com/goodnatureofminers/regtest-walkthrough/pkg/safe"
	"go.uber.org/zap"
)

// extract decodes the confirmed payment and derives the report fields.
func (w *Walkthrough) extract(ctx context.Context, tr transferResult, tx *model.WalletTransaction) (report model.Report, err error) {
	started := time.Now()
	defer func() {
		w.observe(stepExtract, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return report, err
	}
	if !tx.Confirmed() {
		return report, fmt.Errorf("%w: tx %s", ErrBlockMetadataMissing, tx.TxID)
	}

	msgTx, err := bitcoin.DecodeTransaction(tx.Hex)
	if err != nil {
		return report, fmt.Errorf("tx %s: %w", tx.TxID, err)
	}
	if len(msgTx.TxIn) == 0 {
		return report, fmt.Errorf("tx %s has no inputs", tx.TxID)
	}

	inputAddress, err := w.inputAddress(msgTx.TxIn[0].PreviousOutPoint)
	if err != nil {
		return report, fmt.Errorf("first input of tx %s: %w", tx.TxID, err)
	}

	outputs := w.decoder.DecodeOutputs(msgTx)
	fee, err := safe.Abs(tx.Fee)
	if err != nil {
		return report, fmt.Errorf("tx %s fee: %w", tx.TxID, err)
	}
	inputAmount, err := bitcoin.InputAmount(outputs, fee)
	if err != nil {
		return report, fmt.Errorf("tx %s input amount: %w", tx.TxID, err)
	}

	payment, err := bitcoin.FindPayment(outputs, tr.traderAddress.EncodeAddress())
	if err != nil {
		return report, fmt.Errorf("trader output of tx %s: %w", tx.TxID, err)
	}

	report = model.Report{
		Network:             w.cfg.Network,
		TxID:                tx.TxID,
		MinerInputAddress:   inputAddress,
		MinerInputAmount:    inputAmount,
		TraderOutputAddress: payment.Address,
		TraderOutputAmount:  payment.Value,
		Fee:                 fee,
		BlockHeight:         *tx.BlockHeight,
		BlockHash:           tx.BlockHash,
	}
	if change, ok := bitcoin.FindChange(outputs, payment.Address); ok {
		report.MinerChangeAddress = change.Address
		report.MinerChangeAmount = change.Value
	}

	w.logger.Info("payment decoded",
		zap.String("txid", report.TxID),
		zap.String("input_address", report.MinerInputAddress),
		zap.Stringer("input_amount", report.MinerInputAmount),
		zap.Stringer("fee", report.Fee),
		zap.Bool("change", report.HasChange()),
		zap.Int64("block_height", report.BlockHeight),
	)
	return report, nil
}

// inputAddress resolves the address that owned the spent outpoint through the miner wallet.
func (w *Walkthrough) inputAddress(prevOut wire.OutPoint) (string, error) {
	prev, err := w.miner.GetTransaction(&prevOut.Hash)
	if err != nil {
		return "", fmt.Errorf("get previous transaction %s: %w", prevOut.Hash, err)
	}
	prevTx, err := bitcoin.DecodeTransaction(prev.Hex)
	if err != nil {
		return "", fmt.Errorf("previous transaction %s: %w", prevOut.Hash, err)
	}
	spent, err := bitcoin.SpentOutput(prevTx, prevOut.Index)
	if err != nil {
		return "", err
	}
	addr, ok := w.decoder.Address(spent.PkScript)
	if !ok {
		return "", fmt.Errorf("outpoint %s has no standard address", prevOut)
	}
	return addr.EncodeAddress(), nil
}
