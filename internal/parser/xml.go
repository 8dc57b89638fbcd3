package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

// Decoding targets for the submitted document. Element and attribute values
// are taken as strings and coerced explicitly below; pointer fields let us
// tell an absent element/attribute apart from an empty one.
type summaryMarksXML struct {
	Available *string `xml:"available,attr"`
	Obtained  *string `xml:"obtained,attr"`
}

type testResultXML struct {
	ScannedOn     *string          `xml:"scanned-on,attr"`
	FirstName     *string          `xml:"first-name"`
	LastName      *string          `xml:"last-name"`
	StudentNumber *string          `xml:"student-number"`
	TestID        *string          `xml:"test-id"`
	SummaryMarks  *summaryMarksXML `xml:"summary-marks"`
}

type documentXML struct {
	XMLName xml.Name        `xml:"mcq-test-results"`
	Results []testResultXML `xml:"mcq-test-result"`
}

// Parse validates one submitted XML document and decodes it into normalized
// result records. The root element's children always decode into a slice, so
// a single-entry document and a multi-entry document take the same shape.
//
// A document that is not well-formed XML fails with models.ErrMalformedInput.
// A well-formed document with missing or non-integer required fields fails
// with *models.SchemaError listing every offending path. Any invalid entry
// rejects the whole document.
func Parse(doc []byte) ([]*models.TestResult, error) {
	var parsed documentXML
	if err := xml.Unmarshal(doc, &parsed); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", models.ErrMalformedInput, err)
		}
		// Well-formed XML with the wrong root element lands here.
		return nil, &models.SchemaError{Fields: []string{"mcq-test-results"}}
	}

	if len(parsed.Results) == 0 {
		return nil, &models.SchemaError{Fields: []string{"mcq-test-results.mcq-test-result"}}
	}

	records := make([]*models.TestResult, 0, len(parsed.Results))
	var violations []string

	for i, entry := range parsed.Results {
		record, fields := normalizeEntry(i, entry)
		if len(fields) > 0 {
			violations = append(violations, fields...)
			continue
		}
		records = append(records, record)
	}

	if len(violations) > 0 {
		return nil, &models.SchemaError{Fields: violations}
	}

	return records, nil
}

// normalizeEntry checks one decoded entry and coerces its mark attributes.
// It returns either a complete record or the list of offending paths.
func normalizeEntry(index int, entry testResultXML) (*models.TestResult, []string) {
	var fields []string
	path := func(field string) string {
		return fmt.Sprintf("mcq-test-result[%d].%s", index, field)
	}

	if entry.FirstName == nil {
		fields = append(fields, path("first-name"))
	}
	if entry.LastName == nil {
		fields = append(fields, path("last-name"))
	}
	if entry.StudentNumber == nil || *entry.StudentNumber == "" {
		fields = append(fields, path("student-number"))
	}
	if entry.TestID == nil || *entry.TestID == "" {
		fields = append(fields, path("test-id"))
	}

	var available, obtained int
	if entry.SummaryMarks == nil {
		fields = append(fields, path("summary-marks"))
	} else {
		var err error
		available, err = coerceMarks(entry.SummaryMarks.Available)
		if err != nil {
			fields = append(fields, path("summary-marks.@available"))
		}
		obtained, err = coerceMarks(entry.SummaryMarks.Obtained)
		if err != nil {
			fields = append(fields, path("summary-marks.@obtained"))
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}

	record := &models.TestResult{
		TestID:         *entry.TestID,
		StudentNumber:  *entry.StudentNumber,
		FirstName:      *entry.FirstName,
		LastName:       *entry.LastName,
		AvailableMarks: available,
		ObtainedMarks:  obtained,
	}
	if entry.ScannedOn != nil {
		record.ScannedOn = *entry.ScannedOn
	}

	return record, nil
}

// coerceMarks turns a raw attribute value into a non-negative integer.
// The attribute must be present and must parse exactly as a base-10 integer;
// nothing is inferred from the raw text.
func coerceMarks(raw *string) (int, error) {
	if raw == nil {
		return 0, errors.New("missing attribute")
	}

	value, err := strconv.Atoi(*raw)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", *raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative marks: %d", value)
	}

	return value, nil
}
