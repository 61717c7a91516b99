package report

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"go.uber.org/zap"
)

// FileWriter writes the report as a plain text file, replacing any previous one.
type FileWriter struct {
	path   string
	logger *zap.Logger
}

func NewFileWriter(path string, logger *zap.Logger) *FileWriter {
	return &FileWriter{
		path:   path,
		logger: logger.With(zap.String("path", path)),
	}
}

// WriteReport opens the file only once the report is complete, so a failed run leaves the previous file in place.
func (w *FileWriter) WriteReport(ctx context.Context, report model.Report) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", closeErr)
		}
	}()

	buf := bufio.NewWriter(f)
	for i, line := range Lines(report) {
		if _, err = fmt.Fprintln(buf, line); err != nil {
			return fmt.Errorf("write report line %d: %w", i+1, err)
		}
	}
	if err = buf.Flush(); err != nil {
		return fmt.Errorf("flush report file: %w", err)
	}

	w.logger.Info("report saved")
	return nil
}
