package processor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymodel "github.com/hamaguri/riptide/example/payroll/internal/domain/model"
	processor "github.com/hamaguri/riptide/example/payroll/internal/step/processor"
)

func newProcessor(t *testing.T, properties map[string]string) *processor.PayCalculationProcessor {
	t.Helper()
	p, err := processor.NewPayCalculationProcessor(properties)
	require.NoError(t, err)
	return p
}

func TestPayCalculationProcessorRegularHours(t *testing.T) {
	p := newProcessor(t, map[string]string{
		"hourlyRate": "24.5",
		"taxRate":    "0.25",
	})

	out, err := p.Process(context.Background(), paymodel.TimesheetEntry{
		EmployeeID: "E-1001",
		Name:       "Sato Yui",
		Period:     "2026-W34",
		Hours:      38.5,
	})
	require.NoError(t, err)

	payslip, ok := out.(paymodel.Payslip)
	require.True(t, ok)
	assert.Equal(t, "E-1001", payslip.EmployeeID)
	assert.Equal(t, 38.5, payslip.RegularHours)
	assert.Equal(t, 0.0, payslip.OvertimeHours)
	assert.Equal(t, 943.25, payslip.GrossPay)
	assert.Equal(t, 235.8125, payslip.Tax)
	assert.Equal(t, 707.4375, payslip.NetPay)
}

func TestPayCalculationProcessorOvertime(t *testing.T) {
	p := newProcessor(t, map[string]string{
		"hourlyRate": "24.5",
		"taxRate":    "0.25",
	})

	// 45.5 hours against the default threshold of 40 splits into 40 regular
	// and 5.5 overtime hours at 1.5 times the base rate.
	out, err := p.Process(context.Background(), paymodel.TimesheetEntry{
		EmployeeID: "E-1003",
		Hours:      45.5,
	})
	require.NoError(t, err)

	payslip := out.(paymodel.Payslip)
	assert.Equal(t, 40.0, payslip.RegularHours)
	assert.Equal(t, 5.5, payslip.OvertimeHours)
	assert.Equal(t, 1182.125, payslip.GrossPay)
	assert.Equal(t, 295.53125, payslip.Tax)
	assert.Equal(t, 886.59375, payslip.NetPay)
}

func TestPayCalculationProcessorDefaultRates(t *testing.T) {
	p := newProcessor(t, map[string]string{"hourlyRate": "10"})

	out, err := p.Process(context.Background(), paymodel.TimesheetEntry{Hours: 45})
	require.NoError(t, err)

	// Defaults: threshold 40, multiplier 1.5, tax rate 0.2.
	payslip := out.(paymodel.Payslip)
	assert.Equal(t, 40.0, payslip.RegularHours)
	assert.Equal(t, 5.0, payslip.OvertimeHours)
	assert.InDelta(t, 475.0, payslip.GrossPay, 1e-9)
	assert.InDelta(t, 95.0, payslip.Tax, 1e-9)
	assert.InDelta(t, 380.0, payslip.NetPay, 1e-9)
}

func TestPayCalculationProcessorFiltersZeroHours(t *testing.T) {
	p := newProcessor(t, map[string]string{"hourlyRate": "10"})

	out, err := p.Process(context.Background(), paymodel.TimesheetEntry{
		EmployeeID: "E-1004",
		Hours:      0,
	})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPayCalculationProcessorRejectsBadInput(t *testing.T) {
	p := newProcessor(t, map[string]string{"hourlyRate": "10"})

	// Case 1: negative hours.
	_, err := p.Process(context.Background(), paymodel.TimesheetEntry{
		EmployeeID: "E-1009",
		Hours:      -1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative hours")

	// Case 2: an unexpected item type.
	_, err = p.Process(context.Background(), "not a timesheet entry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected input item type")
}

func TestPayCalculationProcessorCancelledContext(t *testing.T) {
	p := newProcessor(t, map[string]string{"hourlyRate": "10"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, paymodel.TimesheetEntry{Hours: 8})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPayCalculationProcessorValidation(t *testing.T) {
	cases := []struct {
		name       string
		properties map[string]string
		message    string
	}{
		{
			name:       "missing hourly rate",
			properties: nil,
			message:    "hourlyRate property must be positive",
		},
		{
			name:       "negative threshold",
			properties: map[string]string{"hourlyRate": "10", "overtimeThresholdHours": "-1"},
			message:    "overtimeThresholdHours property must not be negative",
		},
		{
			name:       "multiplier below one",
			properties: map[string]string{"hourlyRate": "10", "overtimeMultiplier": "0.5"},
			message:    "overtimeMultiplier property must be at least 1",
		},
		{
			name:       "tax rate out of range",
			properties: map[string]string{"hourlyRate": "10", "taxRate": "1"},
			message:    "taxRate property must be in [0, 1)",
		},
		{
			name:       "unparsable rate",
			properties: map[string]string{"hourlyRate": "plenty"},
			message:    "Failed to bind properties",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := processor.NewPayCalculationProcessor(tc.properties)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
