package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// WalletProvisioner makes a named wallet available on the node.
	WalletProvisioner interface {
		Ensure(ctx context.Context, name string) error
	}
	// WalletClient is a node session scoped to one wallet.
	WalletClient interface {
		GetNewAddress(label string) (btcutil.Address, error)
		GenerateToAddress(numBlocks int64, address btcutil.Address) ([]*chainhash.Hash, error)
		GetBalance() (btcutil.Amount, error)
		SendToAddress(address btcutil.Address, amount btcutil.Amount) (*chainhash.Hash, error)
		GetTransaction(txHash *chainhash.Hash) (*model.WalletTransaction, error)
	}
	// NodeClient is the unscoped node session.
	NodeClient interface {
		GetMempoolEntry(txid string) (json.RawMessage, error)
	}
	// ReportWriter delivers the final report.
	ReportWriter interface {
		WriteReport(ctx context.Context, report model.Report) error
	}
	// PipelineMetrics records the outcome of each walkthrough step.
	PipelineMetrics interface {
		ObserveStep(step string, err error, started time.Time)
	}
)
