package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

const insertReportQuery = `
INSERT INTO transfer_reports (
	network,
	txid,
	miner_input_address,
	miner_input_amount,
	trader_output_address,
	trader_output_amount,
	miner_change_address,
	miner_change_amount,
	fee,
	block_height,
	block_hash
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertReport stores one report row. Amounts are kept in satoshis.
func (r *Repository) InsertReport(ctx context.Context, report model.Report) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_report", report.Network, err, start)
	}()

	var changeAddress any
	if report.HasChange() {
		changeAddress = report.MinerChangeAddress
	}

	if err = r.conn.Exec(ctx, insertReportQuery,
		string(report.Network),
		report.TxID,
		report.MinerInputAddress,
		int64(report.MinerInputAmount),
		report.TraderOutputAddress,
		int64(report.TraderOutputAmount),
		changeAddress,
		int64(report.MinerChangeAmount),
		int64(report.Fee),
		report.BlockHeight,
		report.BlockHash,
	); err != nil {
		return fmt.Errorf("insert report %s: %w", report.TxID, err)
	}
	return nil
}

// WriteReport archives the report.
func (r *Repository) WriteReport(ctx context.Context, report model.Report) error {
	return r.InsertReport(ctx, report)
}
