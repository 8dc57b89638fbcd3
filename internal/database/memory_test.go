package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

func TestMemoryStore_UpsertIfHigherScore(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep the higher score under concurrent writes to one key", func(t *testing.T) {
		store := NewMemoryStore()

		var wg sync.WaitGroup
		for score := 1; score <= 50; score++ {
			wg.Add(1)
			go func(score int) {
				defer wg.Done()
				_, err := store.UpsertIfHigherScore(ctx, &models.TestResult{
					TestID:         "1234",
					StudentNumber:  "1",
					AvailableMarks: 50,
					ObtainedMarks:  score,
				})
				assert.NoError(t, err)
			}(score)
		}
		wg.Wait()

		results, err := store.ListByTestID(ctx, "1234")
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 50, results[0].ObtainedMarks)
	})

	t.Run("should not apply an equal score", func(t *testing.T) {
		store := NewMemoryStore()

		applied, err := store.UpsertIfHigherScore(ctx, &models.TestResult{TestID: "1", StudentNumber: "1", ObtainedMarks: 5})
		assert.NoError(t, err)
		assert.True(t, applied)

		applied, err = store.UpsertIfHigherScore(ctx, &models.TestResult{TestID: "1", StudentNumber: "1", ObtainedMarks: 5})
		assert.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("should scope listings to the requested test", func(t *testing.T) {
		store := NewMemoryStore()

		store.UpsertIfHigherScore(ctx, &models.TestResult{TestID: "1", StudentNumber: "1", ObtainedMarks: 5})
		store.UpsertIfHigherScore(ctx, &models.TestResult{TestID: "2", StudentNumber: "1", ObtainedMarks: 9})

		results, err := store.ListByTestID(ctx, "1")
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "1", results[0].TestID)
	})
}

func TestMemoryStore_ImportRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("should only match checksums that completed", func(t *testing.T) {
		store := NewMemoryStore()

		id, err := store.InsertImportRecord(ctx, "abc123", time.Now(), IMPORT_STATUS_PROCESSING)
		assert.NoError(t, err)

		imported, err := store.IsDocumentAlreadyImported(ctx, "abc123")
		assert.NoError(t, err)
		assert.False(t, imported)

		assert.NoError(t, store.UpdateImportStatus(ctx, id, IMPORT_STATUS_DONE, 2, nil))

		imported, err = store.IsDocumentAlreadyImported(ctx, "abc123")
		assert.NoError(t, err)
		assert.True(t, imported)
	})
}
