// Package wallet provisions node-side wallets.
package wallet

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provisioner makes sure named wallets exist and are loaded. Repeated calls converge on the same state.
type Provisioner struct {
	client NodeClient
	logger *zap.Logger
}

// NewProvisioner builds a Provisioner around the unscoped node session.
func NewProvisioner(client NodeClient, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		client: client,
		logger: logger,
	}
}

// Ensure creates the wallet when missing and loads it when not loaded.
func (p *Provisioner) Ensure(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := p.logger.With(zap.String("wallet", name))

	if _, err := p.client.CreateWallet(name); err != nil {
		if Classify(OperationCreate, err) == Fatal {
			return fmt.Errorf("create wallet %s: %w", name, err)
		}
		logger.Info("wallet already exists, loading it")
	} else {
		logger.Info("wallet created")
	}

	if _, err := p.client.LoadWallet(name); err != nil {
		if Classify(OperationLoad, err) == Fatal {
			return fmt.Errorf("load wallet %s: %w", name, err)
		}
		logger.Debug("wallet already loaded")
	}
	return nil
}
