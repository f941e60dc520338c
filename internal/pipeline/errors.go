package pipeline

import (
	"fmt"
	"strings"
)

// Validation and duplicate findings are per-item data accumulated into the
// run result; they never abort a run. Only EmptyInputError,
// ArchiveFormatError and StorageFault are surfaced as Go errors.

// EmptyInputError means nothing was submitted; no transaction is opened.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no records submitted"
}

// ArchiveFormatError means the archive container itself is unusable
// (missing manifest, unparsable manifest, corrupt zip).
type ArchiveFormatError struct {
	Reason string
	Err    error
}

func (e *ArchiveFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid archive: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid archive: %s", e.Reason)
}

func (e *ArchiveFormatError) Unwrap() error {
	return e.Err
}

// StorageFault wraps an infrastructure failure that escaped the per-item
// loop. The whole run has been rolled back when one of these is returned.
type StorageFault struct {
	Op  string
	Err error
}

func (e *StorageFault) Error() string {
	return fmt.Sprintf("storage fault during %s: %v", e.Op, e.Err)
}

func (e *StorageFault) Unwrap() error {
	return e.Err
}

// ValidationError names the identity signals a record is missing. It is
// consumed by the orchestrator as a per-item error string.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Missing, ", "))
}

// DuplicateError marks a candidate whose identity key matched an existing
// vehicle. A skip, not an abort.
type DuplicateError struct {
	Registration string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("vehicle %s already exists", e.Registration)
}
