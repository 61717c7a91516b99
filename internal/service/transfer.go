package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"go.uber.org/zap"
)

// transfer pays the configured amount from the miner to a fresh trader address.
func (w *Walkthrough) transfer(ctx context.Context) (tr transferResult, err error) {
	started := time.Now()
	defer func() {
		w.observe(stepTransfer, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return tr, err
	}

	addr, err := w.trader.GetNewAddress(ReceiveLabel)
	if err != nil {
		return tr, fmt.Errorf("get trader address: %w", err)
	}
	if err = bitcoin.RequireNetwork(addr, w.params); err != nil {
		return tr, fmt.Errorf("trader address: %w", err)
	}
	w.logger.Info("trader receiving address", zap.String("address", addr.EncodeAddress()))

	txid, err := w.miner.SendToAddress(addr, w.cfg.Amount)
	if err != nil {
		return tr, fmt.Errorf("send %s to %s: %w", w.cfg.Amount, addr.EncodeAddress(), err)
	}
	w.logger.Info("payment sent", zap.Stringer("txid", txid), zap.Stringer("amount", w.cfg.Amount))

	return transferResult{traderAddress: addr, txid: txid}, nil
}

// inspectMempool logs the unconfirmed payment as the node's mempool sees it.
func (w *Walkthrough) inspectMempool(ctx context.Context, tr transferResult) (err error) {
	started := time.Now()
	defer func() {
		w.observe(stepMempool, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	entry, err := w.node.GetMempoolEntry(tr.txid.String())
	if err != nil {
		return fmt.Errorf("get mempool entry %s: %w", tr.txid, err)
	}
	var pretty bytes.Buffer
	if err = json.Indent(&pretty, entry, "", "  "); err != nil {
		return fmt.Errorf("mempool entry %s: %w", tr.txid, err)
	}
	w.logger.Info("payment in mempool\n"+pretty.String(), zap.Stringer("txid", tr.txid))
	return nil
}

// confirm mines the payment into a block and returns its wallet view.
func (w *Walkthrough) confirm(ctx context.Context, f bootstrapResult, tr transferResult) (tx *model.WalletTransaction, err error) {
	started := time.Now()
	defer func() {
		w.observe(stepConfirm, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if _, err = w.miner.GenerateToAddress(w.cfg.ConfirmBlocks, f.rewardAddress); err != nil {
		return nil, fmt.Errorf("mine %d confirmation blocks: %w", w.cfg.ConfirmBlocks, err)
	}

	tx, err = w.miner.GetTransaction(tr.txid)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", tr.txid, err)
	}
	if tx.TxID != tr.txid.String() {
		return nil, fmt.Errorf("get transaction %s: node returned %s", tr.txid, tx.TxID)
	}
	w.logger.Info("payment confirmed",
		zap.Stringer("txid", tr.txid),
		zap.Int64("confirmations", tx.Confirmations),
	)
	return tx, nil
}
