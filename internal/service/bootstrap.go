package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"go.uber.org/zap"
)

// bootstrap mines enough blocks to the miner so that coinbase rewards mature.
func (w *Walkthrough) bootstrap(ctx context.Context) (f bootstrapResult, err error) {
	started := time.Now()
	defer func() {
		w.observe(stepBootstrap, started, err)
	}()

	if err = ctx.Err(); err != nil {
		return f, err
	}

	addr, err := w.miner.GetNewAddress(RewardLabel)
	if err != nil {
		return f, fmt.Errorf("get miner reward address: %w", err)
	}
	if err = bitcoin.RequireNetwork(addr, w.params); err != nil {
		return f, fmt.Errorf("miner reward address: %w", err)
	}
	w.logger.Info("miner reward address", zap.String("address", addr.EncodeAddress()))

	before, err := w.miner.GetBalance()
	if err != nil {
		return f, fmt.Errorf("get miner balance: %w", err)
	}

	w.logger.Info("mining blocks to mature coinbase rewards", zap.Int64("blocks", w.cfg.MaturityBlocks))
	hashes, err := w.miner.GenerateToAddress(w.cfg.MaturityBlocks, addr)
	if err != nil {
		return f, fmt.Errorf("mine %d blocks: %w", w.cfg.MaturityBlocks, err)
	}
	if int64(len(hashes)) != w.cfg.MaturityBlocks {
		return f, fmt.Errorf("mined %d of %d blocks", len(hashes), w.cfg.MaturityBlocks)
	}

	after, err := w.miner.GetBalance()
	if err != nil {
		return f, fmt.Errorf("get miner balance: %w", err)
	}
	w.logger.Info("miner balance",
		zap.Stringer("before", before),
		zap.Stringer("after", after),
	)
	if after <= before {
		w.logger.Warn("mining did not increase the miner balance")
	}
	if after < w.cfg.Amount {
		return f, fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, after, w.cfg.Amount)
	}

	return bootstrapResult{rewardAddress: addr, balance: after}, nil
}
