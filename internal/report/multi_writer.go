package report

import (
	"context"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
)

// MultiWriter delivers a report to each writer in order and stops at the first failure.
type MultiWriter struct {
	writers []Writer
}

func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (m *MultiWriter) WriteReport(ctx context.Context, report model.Report) error {
	for _, w := range m.writers {
		if err := w.WriteReport(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
