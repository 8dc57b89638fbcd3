package database

import (
	"context"
	"time"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

const (
	IMPORT_STATUS_PROCESSING       = "PROCESSING"
	IMPORT_STATUS_DONE             = "DONE"
	IMPORT_STATUS_DONE_WITH_ERRORS = "DONE_WITH_ERRORS"
)

// Store is the narrow persistence interface the merge engine and the
// aggregator are built against. UpsertIfHigherScore must be atomic per
// (test_id, student_number) key; ListByTestID must see committed state.
type Store interface {
	CreateTables(ctx context.Context) error
	UpsertIfHigherScore(ctx context.Context, record *models.TestResult) (bool, error)
	ListByTestID(ctx context.Context, testID string) ([]models.TestResult, error)
	InsertImportRecord(ctx context.Context, checksum string, receivedAt time.Time, status string) (int, error)
	UpdateImportStatus(ctx context.Context, importID int, status string, recordCount int, errors any) error
	IsDocumentAlreadyImported(ctx context.Context, checksum string) (bool, error)
}
