package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput marks a submitted document that is not well-formed XML.
var ErrMalformedInput = errors.New("malformed input")

// ErrStorageUnavailable marks a transient storage failure. Safe to retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrTestNotFound is returned when an aggregate is requested for a test with
// no stored results.
var ErrTestNotFound = errors.New("no results for test")

// SchemaError reports a well-formed document that is missing required fields
// or carries non-integer marks. Fields holds the offending XML paths.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s", strings.Join(e.Fields, ", "))
}

// RecordError ties a reconciliation failure to the record that caused it.
type RecordError struct {
	TestID        string `json:"test_id"`
	StudentNumber string `json:"student_number"`
	Message       string `json:"message"`
	Err           error  `json:"-"`
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record (%s, %s): %s: %v", e.TestID, e.StudentNumber, e.Message, e.Err)
	}
	return fmt.Sprintf("record (%s, %s): %s", e.TestID, e.StudentNumber, e.Message)
}

func (e *RecordError) Unwrap() error { return e.Err }
