// Package reader provides the timesheet input component of the payroll example.
package reader

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	configbinder "github.com/hamaguri/riptide/pkg/batch/support/util/configbinder"
	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	paymodel "github.com/hamaguri/riptide/example/payroll/internal/domain/model"
	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
)

// ModuleTimesheetReader identifies this component in wrapped errors.
const ModuleTimesheetReader = "timesheet_reader"

// TimesheetReaderConfig binds the step properties of the timesheet reader.
type TimesheetReaderConfig struct {
	// InputFile is a CSV file holding one "employeeID,name,period,hours"
	// record per line, without a header row. Empty selects the built-in
	// sample timesheet.
	InputFile string `yaml:"inputFile"`
}

// TimesheetReader reads timesheet entries one record at a time, either from
// the configured CSV file or from a built-in sample timesheet, so the example
// runs without any external setup.
type TimesheetReader struct {
	readerConfig *TimesheetReaderConfig
	file         *os.File
	records      *csv.Reader
	samples      []paymodel.TimesheetEntry
	position     int
}

// NewTimesheetReader creates a new TimesheetReader.
// It binds the provided properties to the reader's configuration.
func NewTimesheetReader(properties map[string]string) (*TimesheetReader, error) {
	readerCfg := &TimesheetReaderConfig{}

	if err := configbinder.BindProperties(properties, readerCfg); err != nil {
		return nil, exception.NewBatchError(ModuleTimesheetReader, "Failed to bind properties", err)
	}

	return &TimesheetReader{readerConfig: readerCfg}, nil
}

// Open prepares the timesheet source selected by the configuration.
func (r *TimesheetReader) Open(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if r.readerConfig.InputFile == "" {
		r.samples = sampleTimesheet()
		r.position = 0
		logger.Debugf("TimesheetReader: No input file configured. Using %d sample entries.", len(r.samples))
		return nil
	}

	file, err := os.Open(r.readerConfig.InputFile)
	if err != nil {
		return exception.NewBatchErrorf(ModuleTimesheetReader, "failed to open timesheet file '%s'", r.readerConfig.InputFile, err)
	}
	r.file = file
	r.records = csv.NewReader(file)
	r.records.FieldsPerRecord = 4
	r.records.TrimLeadingSpace = true
	logger.Debugf("TimesheetReader: Reading timesheet entries from '%s'.", r.readerConfig.InputFile)
	return nil
}

// Read returns the next timesheet entry, or core.ErrNoMoreItems once the
// source is exhausted.
func (r *TimesheetReader) Read(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if r.records == nil {
		if r.position >= len(r.samples) {
			return nil, core.ErrNoMoreItems
		}
		entry := r.samples[r.position]
		r.position++
		return entry, nil
	}

	record, err := r.records.Read()
	if err == io.EOF {
		return nil, core.ErrNoMoreItems
	}
	if err != nil {
		return nil, exception.NewBatchError(ModuleTimesheetReader, "Failed to read timesheet record", err)
	}
	return parseEntry(record)
}

// Close releases the underlying file, if one was opened.
func (r *TimesheetReader) Close(ctx context.Context) error {
	if r.file == nil {
		logger.Debugf("TimesheetReader: Close called.")
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.records = nil
	if err != nil {
		return exception.NewBatchError(ModuleTimesheetReader, "Failed to close timesheet file", err)
	}
	return nil
}

// parseEntry converts one CSV record to a timesheet entry.
func parseEntry(record []string) (any, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return nil, exception.NewBatchErrorf(ModuleTimesheetReader, "timesheet record for employee '%s' has a malformed hours field '%s'", record[0], record[3], err)
	}
	return paymodel.TimesheetEntry{
		EmployeeID: strings.TrimSpace(record[0]),
		Name:       strings.TrimSpace(record[1]),
		Period:     strings.TrimSpace(record[2]),
		Hours:      hours,
	}, nil
}

// sampleTimesheet returns the built-in demonstration entries. Two of them
// exceed a forty hour week, so the overtime path of the calculation is
// exercised by default.
func sampleTimesheet() []paymodel.TimesheetEntry {
	return []paymodel.TimesheetEntry{
		{EmployeeID: "E-1001", Name: "Sato Yui", Period: "2026-W34", Hours: 38.5},
		{EmployeeID: "E-1002", Name: "Tanaka Hiro", Period: "2026-W34", Hours: 40},
		{EmployeeID: "E-1003", Name: "Kimura Aya", Period: "2026-W34", Hours: 45.5},
		{EmployeeID: "E-1004", Name: "Ishida Ken", Period: "2026-W34", Hours: 0},
		{EmployeeID: "E-1005", Name: "Mori Emi", Period: "2026-W34", Hours: 36},
		{EmployeeID: "E-1006", Name: "Abe Daiki", Period: "2026-W34", Hours: 51},
	}
}

var _ core.ItemReader[any] = (*TimesheetReader)(nil)
