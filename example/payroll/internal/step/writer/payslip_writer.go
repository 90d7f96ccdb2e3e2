// Package writer provides the payslip output component of the payroll example.
package writer

import (
	"context"
	"fmt"
	"os"

	configbinder "github.com/hamaguri/riptide/pkg/batch/support/util/configbinder"
	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	paymodel "github.com/hamaguri/riptide/example/payroll/internal/domain/model"
	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
)

// ModulePayslipWriter identifies this component in wrapped errors.
const ModulePayslipWriter = "payslip_writer"

// PayslipWriterConfig binds the step properties of the payslip writer.
type PayslipWriterConfig struct {
	// OutputFile is the file payslip lines are written to. Each run truncates
	// it. Empty logs the payslips instead of writing a file.
	OutputFile string `yaml:"outputFile"`
}

// PayslipWriter persists calculated payslips as tab separated lines, either
// to the configured output file or to the application log.
type PayslipWriter struct {
	writerConfig *PayslipWriterConfig
	out          *os.File
	written      int
}

// NewPayslipWriter creates a new PayslipWriter.
// It binds the provided properties to the writer's configuration.
func NewPayslipWriter(properties map[string]string) (*PayslipWriter, error) {
	writerCfg := &PayslipWriterConfig{}

	if err := configbinder.BindProperties(properties, writerCfg); err != nil {
		return nil, exception.NewBatchError(ModulePayslipWriter, "Failed to bind properties", err)
	}

	return &PayslipWriter{writerConfig: writerCfg}, nil
}

// Open prepares the payslip destination selected by the configuration.
func (w *PayslipWriter) Open(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.writerConfig.OutputFile == "" {
		logger.Debugf("PayslipWriter: No output file configured. Payslips are logged.")
		return nil
	}

	out, err := os.Create(w.writerConfig.OutputFile)
	if err != nil {
		return exception.NewBatchErrorf(ModulePayslipWriter, "failed to create payslip file '%s'", w.writerConfig.OutputFile, err)
	}
	w.out = out
	logger.Debugf("PayslipWriter: Writing payslips to '%s'.", w.writerConfig.OutputFile)
	return nil
}

// Write persists one chunk of payslips.
func (w *PayslipWriter) Write(ctx context.Context, items []any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	for _, item := range items {
		payslip, ok := item.(paymodel.Payslip)
		if !ok {
			return exception.NewBatchErrorf(ModulePayslipWriter, "unexpected input item type: %T", item)
		}

		if w.out != nil {
			_, err := fmt.Fprintf(w.out, "%s\t%s\t%s\tgross=%.2f\ttax=%.2f\tnet=%.2f\n",
				payslip.EmployeeID, payslip.Name, payslip.Period, payslip.GrossPay, payslip.Tax, payslip.NetPay)
			if err != nil {
				return exception.NewBatchError(ModulePayslipWriter, "Failed to write payslip line", err)
			}
		} else {
			logger.Infof("Payslip %s (%s, %s): gross=%.2f tax=%.2f net=%.2f",
				payslip.EmployeeID, payslip.Name, payslip.Period, payslip.GrossPay, payslip.Tax, payslip.NetPay)
		}
		w.written++
	}

	logger.Debugf("PayslipWriter: Wrote a chunk of %d payslip(s).", len(items))
	return nil
}

// Close finishes the run and releases the output file, if one was opened.
func (w *PayslipWriter) Close(ctx context.Context) error {
	logger.Infof("PayslipWriter: %d payslip(s) written in total.", w.written)
	if w.out == nil {
		return nil
	}
	err := w.out.Close()
	w.out = nil
	if err != nil {
		return exception.NewBatchError(ModulePayslipWriter, "Failed to close payslip file", err)
	}
	return nil
}

var _ core.ItemWriter[any] = (*PayslipWriter)(nil)
