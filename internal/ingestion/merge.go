package ingestion

import (
	"context"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

// MergeEngine reconciles parsed result records against the store. It holds no
// state of its own; every decision is delegated to the store's atomic
// conditional upsert, so concurrent reconciliations for the same key always
// serialize to "higher score wins".
type MergeEngine struct {
	store database.Store
}

func NewMergeEngine(store database.Store) *MergeEngine {
	return &MergeEngine{store: store}
}

// Reconcile applies one conditional upsert per record. Records are
// independent: a failure on one does not roll back the others, but every
// failure is reported alongside the record that caused it. Applied counts
// rows that were inserted or replaced; Skipped counts no-op writes (the
// stored score was greater or equal).
func (e *MergeEngine) Reconcile(ctx context.Context, records []*models.TestResult) (*models.ImportReceipt, []*models.RecordError) {
	receipt := &models.ImportReceipt{Records: len(records)}
	var failures []*models.RecordError

	for _, record := range records {
		applied, err := e.store.UpsertIfHigherScore(ctx, record)
		if err != nil {
			failures = append(failures, &models.RecordError{
				TestID:        record.TestID,
				StudentNumber: record.StudentNumber,
				Message:       "failed to reconcile record",
				Err:           err,
			})
			continue
		}

		if applied {
			receipt.Applied++
		} else {
			receipt.Skipped++
		}
	}

	return receipt, failures
}
