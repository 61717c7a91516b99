// Package service runs the regtest walkthrough: provision wallets, fund the miner,
// pay the trader, follow the payment into a block and report on it.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"go.uber.org/zap"
)

const (
	stepProvision = "provision"
	stepBootstrap = "bootstrap"
	stepTransfer  = "transfer"
	stepMempool   = "mempool"
	stepConfirm   = "confirm"
	stepExtract   = "extract"
	stepReport    = "report"
)

var (
	// ErrInsufficientBalance is returned when mining did not fund the payment.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBlockMetadataMissing is returned when a transaction expected in a block has no height or hash.
	ErrBlockMetadataMissing = errors.New("block metadata missing")
)

type bootstrapResult struct {
	rewardAddress btcutil.Address
	balance       btcutil.Amount
}

type transferResult struct {
	traderAddress btcutil.Address
	txid          *chainhash.Hash
}

// Walkthrough drives one run. Steps execute strictly in order and the first error ends the run.
type Walkthrough struct {
	cfg         Config
	params      *chaincfg.Params
	decoder     *bitcoin.ScriptDecoder
	provisioner WalletProvisioner
	node        NodeClient
	miner       WalletClient
	trader      WalletClient
	writer      ReportWriter
	metrics     PipelineMetrics
	logger      *zap.Logger
}

func NewWalkthrough(
	cfg Config,
	provisioner WalletProvisioner,
	node NodeClient,
	miner WalletClient,
	trader WalletClient,
	writer ReportWriter,
	metrics PipelineMetrics,
	logger *zap.Logger,
) (*Walkthrough, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if metrics == nil {
		return nil, errors.New("pipeline metrics is required")
	}

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return nil, err
	}

	return &Walkthrough{
		cfg:         cfg,
		params:      decoder.Params(),
		decoder:     decoder,
		provisioner: provisioner,
		node:        node,
		miner:       miner,
		trader:      trader,
		writer:      writer,
		metrics:     metrics,
		logger:      logger.With(zap.String("network", string(cfg.Network))),
	}, nil
}

// Run executes the walkthrough and returns the report it delivered.
func (w *Walkthrough) Run(ctx context.Context) (model.Report, error) {
	if err := w.provision(ctx); err != nil {
		return model.Report{}, err
	}
	f, err := w.bootstrap(ctx)
	if err != nil {
		return model.Report{}, err
	}
	tr, err := w.transfer(ctx)
	if err != nil {
		return model.Report{}, err
	}
	if err := w.inspectMempool(ctx, tr); err != nil {
		return model.Report{}, err
	}
	tx, err := w.confirm(ctx, f, tr)
	if err != nil {
		return model.Report{}, err
	}
	report, err := w.extract(ctx, tr, tx)
	if err != nil {
		return model.Report{}, err
	}
	if err := w.writeReport(ctx, report); err != nil {
		return model.Report{}, err
	}
	return report, nil
}

func (w *Walkthrough) observe(step string, started time.Time, err error) {
	w.metrics.ObserveStep(step, err, started)
}

func (w *Walkthrough) provision(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		w.observe(stepProvision, started, err)
	}()

	for _, name := range []string{w.cfg.MinerWallet, w.cfg.TraderWallet} {
		if err = w.provisioner.Ensure(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walkthrough) writeReport(ctx context.Context, report model.Report) (err error) {
	started := time.Now()
	defer func() {
		w.observe(stepReport, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = w.writer.WriteReport(ctx, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	w.logger.Info("report written", zap.String("txid", report.TxID))
	return nil
}
