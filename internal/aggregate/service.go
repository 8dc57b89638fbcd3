package aggregate

import (
	"context"
	"fmt"
	"sort"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

// Service computes summary statistics over the stored results of one test.
// It is a pure read path: every call reflects the committed state at call
// time, nothing is cached.
type Service struct {
	store database.Store
}

func NewService(store database.Store) *Service {
	return &Service{store: store}
}

// Aggregate returns count, mean, min, max and the discrete 25th/50th/75th
// percentiles of the obtained marks recorded for testID. A test with no
// stored results is a not-found condition, never a zeroed stats object.
func (s *Service) Aggregate(ctx context.Context, testID string) (*models.TestStats, error) {
	results, err := s.store.ListByTestID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrTestNotFound, testID)
	}

	scores := make([]int, len(results))
	sum := 0
	for i, result := range results {
		scores[i] = result.ObtainedMarks
		sum += result.ObtainedMarks
	}
	sort.Ints(scores)

	count := len(scores)
	return &models.TestStats{
		Count: count,
		Mean:  float64(sum) / float64(count),
		Min:   scores[0],
		Max:   scores[count-1],
		P25:   nearestRank(scores, 25),
		P50:   nearestRank(scores, 50),
		P75:   nearestRank(scores, 75),
	}, nil
}

// nearestRank picks the percentile-th value from the ascending scores using
// the nearest-rank method: the zero-based index is ceil(n*q)-1. The result
// is always one of the observed scores, never an interpolation.
func nearestRank(sorted []int, percentile int) int {
	n := len(sorted)
	rank := (n*percentile + 99) / 100
	if rank < 1 {
		rank = 1
	}

	return sorted[rank-1]
}
