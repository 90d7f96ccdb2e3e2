// Package processor provides the pay calculation component of the payroll
// example.
package processor

import (
	"context"

	configbinder "github.com/hamaguri/riptide/pkg/batch/support/util/configbinder"
	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	paymodel "github.com/hamaguri/riptide/example/payroll/internal/domain/model"
	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
)

// ModulePayCalculationProcessor identifies this component in wrapped errors.
const ModulePayCalculationProcessor = "pay_calculation_processor"

// PayCalculationProcessorConfig binds the step properties of the pay
// calculation processor.
type PayCalculationProcessorConfig struct {
	// HourlyRate is the base pay per hour. Required.
	HourlyRate float64 `yaml:"hourlyRate"`
	// OvertimeThresholdHours is the number of hours paid at the base rate
	// before the overtime multiplier applies.
	OvertimeThresholdHours float64 `yaml:"overtimeThresholdHours"`
	// OvertimeMultiplier scales the base rate for hours beyond the threshold.
	OvertimeMultiplier float64 `yaml:"overtimeMultiplier"`
	// TaxRate is the flat withholding rate in [0, 1).
	TaxRate float64 `yaml:"taxRate"`
}

// PayCalculationProcessor turns a timesheet entry into a payslip: it splits
// the reported hours at the overtime threshold, prices both portions, and
// withholds tax. Entries without reported hours are filtered out.
type PayCalculationProcessor struct {
	processorConfig *PayCalculationProcessorConfig
}

// NewPayCalculationProcessor creates a new PayCalculationProcessor.
// It binds the provided properties to the processor's configuration and
// validates the resulting rates.
func NewPayCalculationProcessor(properties map[string]string) (*PayCalculationProcessor, error) {
	processorCfg := &PayCalculationProcessorConfig{
		OvertimeThresholdHours: 40,
		OvertimeMultiplier:     1.5,
		TaxRate:                0.2,
	}

	if err := configbinder.BindProperties(properties, processorCfg); err != nil {
		return nil, exception.NewBatchError(ModulePayCalculationProcessor, "Failed to bind properties", err)
	}

	if processorCfg.HourlyRate <= 0 {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "hourlyRate property must be positive, got %v", processorCfg.HourlyRate)
	}
	if processorCfg.OvertimeThresholdHours < 0 {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "overtimeThresholdHours property must not be negative, got %v", processorCfg.OvertimeThresholdHours)
	}
	if processorCfg.OvertimeMultiplier < 1 {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "overtimeMultiplier property must be at least 1, got %v", processorCfg.OvertimeMultiplier)
	}
	if processorCfg.TaxRate < 0 || processorCfg.TaxRate >= 1 {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "taxRate property must be in [0, 1), got %v", processorCfg.TaxRate)
	}

	return &PayCalculationProcessor{processorConfig: processorCfg}, nil
}

// Process calculates the payslip for one timesheet entry.
func (p *PayCalculationProcessor) Process(ctx context.Context, item any) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entry, ok := item.(paymodel.TimesheetEntry)
	if !ok {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "unexpected input item type: %T", item)
	}

	if entry.Hours < 0 {
		return nil, exception.NewBatchErrorf(ModulePayCalculationProcessor, "employee '%s' reported negative hours: %v", entry.EmployeeID, entry.Hours)
	}
	if entry.Hours == 0 {
		logger.Debugf("PayCalculationProcessor: Employee '%s' reported no hours for period '%s'. Filtering entry.", entry.EmployeeID, entry.Period)
		return nil, nil // Filtering (returning nil means the item is filtered out)
	}

	cfg := p.processorConfig
	regular := entry.Hours
	overtime := 0.0
	if entry.Hours > cfg.OvertimeThresholdHours {
		regular = cfg.OvertimeThresholdHours
		overtime = entry.Hours - cfg.OvertimeThresholdHours
	}

	gross := regular*cfg.HourlyRate + overtime*cfg.HourlyRate*cfg.OvertimeMultiplier
	tax := gross * cfg.TaxRate

	return paymodel.Payslip{
		EmployeeID:    entry.EmployeeID,
		Name:          entry.Name,
		Period:        entry.Period,
		RegularHours:  regular,
		OvertimeHours: overtime,
		GrossPay:      gross,
		Tax:           tax,
		NetPay:        gross - tax,
	}, nil
}

var _ core.ItemProcessor[any, any] = (*PayCalculationProcessor)(nil)
