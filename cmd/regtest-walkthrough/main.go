package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/bitcoin"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/metrics"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	rpcclient2 "github.com/goodnatureofminers/regtest-walkthrough/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/report"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/report/clickhouse"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/service"
	"github.com/goodnatureofminers/regtest-walkthrough/internal/wallet"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	RPCURL         string        `long:"rpc-url" env:"REGTEST_RPC_URL" description:"Bitcoin node RPC URL" default:"http://127.0.0.1:18443"`
	RPCUser        string        `long:"rpc-user" env:"REGTEST_RPC_USER" description:"Bitcoin node RPC username" default:"bitcoin"`
	RPCPassword    string        `long:"rpc-password" env:"REGTEST_RPC_PASSWORD" description:"Bitcoin node RPC password" default:"secret"`
	RPCRPS         int           `long:"rpc-rps" env:"REGTEST_RPC_RPS" description:"max RPC calls per second per session, 0 for unlimited" default:"0"`
	Network        model.Network `long:"network" env:"REGTEST_NETWORK" description:"network the node runs on" default:"regtest"`
	MinerWallet    string        `long:"miner-wallet" env:"REGTEST_MINER_WALLET" description:"wallet that mines and pays" default:"Miner"`
	TraderWallet   string        `long:"trader-wallet" env:"REGTEST_TRADER_WALLET" description:"wallet that receives the payment" default:"Trader"`
	MaturityBlocks int64         `long:"maturity-blocks" env:"REGTEST_MATURITY_BLOCKS" description:"blocks mined to the miner before paying" default:"110"`
	ConfirmBlocks  int64         `long:"confirm-blocks" env:"REGTEST_CONFIRM_BLOCKS" description:"blocks mined to confirm the payment" default:"1"`
	Amount         float64       `long:"amount" env:"REGTEST_AMOUNT" description:"payment amount in BTC" default:"0.1"`
	Output         string        `long:"output" env:"REGTEST_OUTPUT" description:"report file path" default:"../out.txt"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"REGTEST_CLICKHOUSE_DSN" description:"ClickHouse DSN for the report archive, empty to disable"`
	MetricsFile    string        `long:"metrics-file" env:"REGTEST_METRICS_FILE" description:"write metrics in textfile format to this path on exit"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	svcCfg, err := cfg.serviceConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, svcCfg, cfg.ClickhouseDSN, cfg.MetricsFile, logger); err != nil {
		logger.Fatal("regtest walkthrough failed", zap.Error(err))
	}
}

func (c config) serviceConfig() (service.Config, error) {
	amount, err := bitcoin.AmountFromBTC(c.Amount)
	if err != nil {
		return service.Config{}, fmt.Errorf("amount: %w", err)
	}
	cfg := service.Config{
		RPC: service.RPCConfig{
			URL:      c.RPCURL,
			User:     c.RPCUser,
			Password: c.RPCPassword,
			RPS:      c.RPCRPS,
		},
		Network:        c.Network,
		MinerWallet:    c.MinerWallet,
		TraderWallet:   c.TraderWallet,
		MaturityBlocks: c.MaturityBlocks,
		ConfirmBlocks:  c.ConfirmBlocks,
		Amount:         amount,
		OutputPath:     c.Output,
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg service.Config, clickhouseDSN, metricsFile string, logger *zap.Logger) (err error) {
	if metricsFile != "" {
		defer func() {
			if writeErr := metrics.WriteTextfile(metricsFile); writeErr != nil {
				logger.Error("failed to export metrics", zap.Error(writeErr))
			}
		}()
	}

	params, err := bitcoin.ChainParams(cfg.Network)
	if err != nil {
		return err
	}

	sessions := make([]*rpcclient.Client, 0, 3)
	defer func() {
		for _, c := range sessions {
			c.Shutdown()
			c.WaitForShutdown()
		}
	}()
	session := func(walletName string) (*rpcclient2.ObservedClient, error) {
		c, err := newRPCClient(cfg.RPC.URL, cfg.RPC.User, cfg.RPC.Password, params.Name, walletName)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, c)
		return rpcclient2.NewObservedClient(c, metrics.NewRPCClient(cfg.Network, walletName), cfg.RPC.RPS), nil
	}

	node, err := session("")
	if err != nil {
		return fmt.Errorf("init node rpc client: %w", err)
	}
	miner, err := session(cfg.MinerWallet)
	if err != nil {
		return fmt.Errorf("init miner rpc client: %w", err)
	}
	trader, err := session(cfg.TraderWallet)
	if err != nil {
		return fmt.Errorf("init trader rpc client: %w", err)
	}

	var archive report.Writer
	if clickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(clickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init report archive: %w", err)
		}
		defer func() {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("failed to close report archive", zap.Error(closeErr))
			}
		}()
		archive = repo
	}

	svc, err := service.NewWalkthrough(
		cfg,
		wallet.NewProvisioner(node, logger.Named("wallet")),
		node,
		miner,
		trader,
		reportWriter(report.NewFileWriter(cfg.OutputPath, logger.Named("report")), archive),
		metrics.NewPipeline(cfg.Network),
		logger.Named("walkthrough"),
	)
	if err != nil {
		return err
	}

	r, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("walkthrough complete",
		zap.String("txid", r.TxID),
		zap.String("output", cfg.OutputPath),
	)
	return nil
}

// newRPCClient opens a session on the node. A non-empty walletName scopes it to /wallet/<name>.
// reportWriter archives before touching the report file, so a failed archive leaves the file as it was.
func reportWriter(file, archive report.Writer) report.Writer {
	if archive == nil {
		return report.NewMultiWriter(file)
	}
	return report.NewMultiWriter(archive, file)
}

func newRPCClient(rawURL, user, password, chain, walletName string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	host := parsed.Host
	if walletName != "" {
		host += "/wallet/" + url.PathEscape(walletName)
	}

	cfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         password,
		Params:       chain,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}
