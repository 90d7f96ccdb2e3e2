// Package model defines the domain model of the Riptide configuration toolkit:
// batch statuses, transition records, flow definitions, and resolved step
// definitions produced by the job definition loader.
package model

import "fmt"

// BatchStatus represents the completion status a transition pattern is matched
// against, and the terminal status carried by synthesized terminal states.
// The set is closed; status literals in job definitions must resolve to one of
// these values.
type BatchStatus string

const (
	// BatchStatusCompleted indicates successful completion.
	BatchStatusCompleted BatchStatus = "COMPLETED"
	// BatchStatusStarting indicates a unit of work that has been accepted but not started.
	BatchStatusStarting BatchStatus = "STARTING"
	// BatchStatusStarted indicates a unit of work in progress.
	BatchStatusStarted BatchStatus = "STARTED"
	// BatchStatusStopping indicates a stop has been requested.
	BatchStatusStopping BatchStatus = "STOPPING"
	// BatchStatusStopped indicates a unit of work stopped before completion.
	BatchStatusStopped BatchStatus = "STOPPED"
	// BatchStatusFailed indicates failure.
	BatchStatusFailed BatchStatus = "FAILED"
	// BatchStatusAbandoned indicates a unit of work marked as not restartable.
	BatchStatusAbandoned BatchStatus = "ABANDONED"
	// BatchStatusUnknown indicates an indeterminate outcome.
	BatchStatusUnknown BatchStatus = "UNKNOWN"
)

// batchStatuses is the closed literal set accepted by ParseBatchStatus.
var batchStatuses = map[string]BatchStatus{
	string(BatchStatusCompleted): BatchStatusCompleted,
	string(BatchStatusStarting):  BatchStatusStarting,
	string(BatchStatusStarted):   BatchStatusStarted,
	string(BatchStatusStopping):  BatchStatusStopping,
	string(BatchStatusStopped):   BatchStatusStopped,
	string(BatchStatusFailed):    BatchStatusFailed,
	string(BatchStatusAbandoned): BatchStatusAbandoned,
	string(BatchStatusUnknown):   BatchStatusUnknown,
}

// ParseBatchStatus resolves a status literal to its BatchStatus value.
// Resolution is case-sensitive; an unknown literal returns an invalid-argument
// error, which the configuration layer treats as fatal.
func ParseBatchStatus(s string) (BatchStatus, error) {
	if status, ok := batchStatuses[s]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid batch status literal '%s'", s)
}

// String returns the string representation of the BatchStatus.
func (s BatchStatus) String() string {
	return string(s)
}

// IsFinished reports whether the status represents a terminal outcome.
func (s BatchStatus) IsFinished() bool {
	switch s {
	case BatchStatusCompleted, BatchStatusStopped, BatchStatusFailed, BatchStatusAbandoned:
		return true
	}
	return false
}
