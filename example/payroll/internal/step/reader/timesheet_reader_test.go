package reader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymodel "github.com/hamaguri/riptide/example/payroll/internal/domain/model"
	reader "github.com/hamaguri/riptide/example/payroll/internal/step/reader"
	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
)

// drain reads entries until the reader reports exhaustion.
func drain(t *testing.T, r *reader.TimesheetReader) []paymodel.TimesheetEntry {
	t.Helper()
	ctx := context.Background()
	var entries []paymodel.TimesheetEntry
	for {
		item, err := r.Read(ctx)
		if errors.Is(err, core.ErrNoMoreItems) {
			return entries
		}
		require.NoError(t, err)
		entries = append(entries, item.(paymodel.TimesheetEntry))
	}
}

func TestTimesheetReaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheets.csv")
	csvData := "E-2001,Ueda Rin,2026-W34,39.5\nE-2002, Hayashi Ren ,2026-W34, 42\n"
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	r, err := reader.NewTimesheetReader(map[string]string{"inputFile": path})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.Open(ctx))
	defer r.Close(ctx)

	entries := drain(t, r)
	require.Len(t, entries, 2)
	assert.Equal(t, paymodel.TimesheetEntry{
		EmployeeID: "E-2001",
		Name:       "Ueda Rin",
		Period:     "2026-W34",
		Hours:      39.5,
	}, entries[0])
	// Surrounding spaces in fields are trimmed.
	assert.Equal(t, "Hayashi Ren", entries[1].Name)
	assert.Equal(t, 42.0, entries[1].Hours)

	require.NoError(t, r.Close(ctx))
}

func TestTimesheetReaderSampleFallback(t *testing.T) {
	// Without an input file the reader serves the built-in sample timesheet.
	r, err := reader.NewTimesheetReader(nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.Open(ctx))
	defer r.Close(ctx)

	entries := drain(t, r)
	require.Len(t, entries, 6)
	assert.Equal(t, "E-1001", entries[0].EmployeeID)

	// The samples exercise both the overtime and the filtering paths.
	var overtime, zero int
	for _, e := range entries {
		if e.Hours > 40 {
			overtime++
		}
		if e.Hours == 0 {
			zero++
		}
	}
	assert.Equal(t, 2, overtime)
	assert.Equal(t, 1, zero)
}

func TestTimesheetReaderMissingFile(t *testing.T) {
	r, err := reader.NewTimesheetReader(map[string]string{
		"inputFile": filepath.Join(t.TempDir(), "absent.csv"),
	})
	require.NoError(t, err)

	err = r.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open timesheet file")
}

func TestTimesheetReaderMalformedRecords(t *testing.T) {
	ctx := context.Background()

	// Case 1: a record with the wrong number of fields.
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("E-2001,Ueda Rin,2026-W34\n"), 0o644))
	r, err := reader.NewTimesheetReader(map[string]string{"inputFile": path})
	require.NoError(t, err)
	require.NoError(t, r.Open(ctx))
	defer r.Close(ctx)

	_, err = r.Read(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read timesheet record")

	// Case 2: a record with unparsable hours.
	path = filepath.Join(t.TempDir(), "badhours.csv")
	require.NoError(t, os.WriteFile(path, []byte("E-2001,Ueda Rin,2026-W34,lots\n"), 0o644))
	r, err = reader.NewTimesheetReader(map[string]string{"inputFile": path})
	require.NoError(t, err)
	require.NoError(t, r.Open(ctx))
	defer r.Close(ctx)

	_, err = r.Read(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed hours field 'lots'")
}

func TestTimesheetReaderCancelledContext(t *testing.T) {
	r, err := reader.NewTimesheetReader(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Open(ctx), context.Canceled)
	_, err = r.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
