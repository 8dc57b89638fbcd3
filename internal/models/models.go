package models

import "time"

// TestResult is the persisted record for one student's attempt at one test.
// (TestID, StudentNumber) is the primary key; at most one row exists per pair.
type TestResult struct {
	TestID         string `json:"test_id"`
	StudentNumber  string `json:"student_number"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	ScannedOn      string `json:"scanned_on,omitempty"`
	AvailableMarks int    `json:"available_marks"`
	ObtainedMarks  int    `json:"obtained_marks"`
}

// Key returns the identity of the record as stored.
func (r *TestResult) Key() (string, string) {
	return r.TestID, r.StudentNumber
}

// TestStats is the aggregate view over all stored results for one test.
// Mean is a float; the remaining fields are on the obtained-marks integer
// scale and always equal an actually observed score.
type TestStats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	P25   int     `json:"p25"`
	P50   int     `json:"p50"`
	P75   int     `json:"p75"`
}

// ImportReceipt summarizes what one document's reconciliation did.
type ImportReceipt struct {
	Records int `json:"records"`
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// ImportRecord is the audit row kept per accepted document.
type ImportRecord struct {
	ID          int
	Checksum    string
	ReceivedAt  time.Time
	Status      string
	RecordCount int
}
