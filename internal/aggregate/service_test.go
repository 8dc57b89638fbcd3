package aggregate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateTables(ctx context.Context) error {
	return nil
}

func (m *MockStore) UpsertIfHigherScore(ctx context.Context, record *models.TestResult) (bool, error) {
	return false, nil
}

func (m *MockStore) ListByTestID(ctx context.Context, testID string) ([]models.TestResult, error) {
	args := m.Called(testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestResult), args.Error(1)
}

func (m *MockStore) InsertImportRecord(ctx context.Context, checksum string, receivedAt time.Time, status string) (int, error) {
	return 0, nil
}

func (m *MockStore) UpdateImportStatus(ctx context.Context, importID int, status string, recordCount int, errs any) error {
	return nil
}

func (m *MockStore) IsDocumentAlreadyImported(ctx context.Context, checksum string) (bool, error) {
	return false, nil
}

func seedScores(t *testing.T, store database.Store, testID string, scores []int) {
	t.Helper()

	for i, score := range scores {
		applied, err := store.UpsertIfHigherScore(context.Background(), &models.TestResult{
			TestID:         testID,
			StudentNumber:  fmt.Sprintf("student-%d", i),
			AvailableMarks: 100,
			ObtainedMarks:  score,
		})
		assert.NoError(t, err)
		assert.True(t, applied)
	}
}

func TestService_Aggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("should compute nearest-rank percentiles over four scores", func(t *testing.T) {
		store := database.NewMemoryStore()
		seedScores(t, store, "9863", []int{60, 70, 80, 90})

		stats, err := NewService(store).Aggregate(ctx, "9863")

		assert.NoError(t, err)
		assert.Equal(t, &models.TestStats{
			Count: 4,
			Mean:  75,
			Min:   60,
			Max:   90,
			P25:   60,
			P50:   70,
			P75:   80,
		}, stats)
	})

	t.Run("should collapse a single result into every statistic", func(t *testing.T) {
		store := database.NewMemoryStore()
		seedScores(t, store, "9863", []int{75})

		stats, err := NewService(store).Aggregate(ctx, "9863")

		assert.NoError(t, err)
		assert.Equal(t, &models.TestStats{
			Count: 1,
			Mean:  75,
			Min:   75,
			Max:   75,
			P25:   75,
			P50:   75,
			P75:   75,
		}, stats)
	})

	t.Run("should pick observed scores for an odd-sized dataset", func(t *testing.T) {
		store := database.NewMemoryStore()
		seedScores(t, store, "9863", []int{10, 20, 30, 40, 50})

		stats, err := NewService(store).Aggregate(ctx, "9863")

		assert.NoError(t, err)
		// ceil(5*q)-1: ranks 2, 3, 4 (one-based) into {10,20,30,40,50}.
		assert.Equal(t, 20, stats.P25)
		assert.Equal(t, 30, stats.P50)
		assert.Equal(t, 40, stats.P75)
		assert.Equal(t, float64(30), stats.Mean)
	})

	t.Run("should only aggregate the requested test", func(t *testing.T) {
		store := database.NewMemoryStore()
		seedScores(t, store, "9863", []int{10, 90})
		seedScores(t, store, "other", []int{50})

		stats, err := NewService(store).Aggregate(ctx, "9863")

		assert.NoError(t, err)
		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, float64(50), stats.Mean)
	})

	t.Run("should fail with not-found for a test with no stored results", func(t *testing.T) {
		store := database.NewMemoryStore()

		stats, err := NewService(store).Aggregate(ctx, "missing")

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, models.ErrTestNotFound)
	})

	t.Run("should propagate a storage failure", func(t *testing.T) {
		store := new(MockStore)
		unavailable := fmt.Errorf("%w: connection refused", models.ErrStorageUnavailable)
		store.On("ListByTestID", "9863").Return(nil, unavailable).Once()

		stats, err := NewService(store).Aggregate(ctx, "9863")

		assert.Nil(t, stats)
		assert.ErrorIs(t, err, models.ErrStorageUnavailable)

		store.AssertExpectations(t)
	})
}
