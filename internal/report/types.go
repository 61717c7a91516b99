package report

import (
	"context"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Writer delivers a report to one destination.
	Writer interface {
		WriteReport(ctx context.Context, report model.Report) error
	}
)
