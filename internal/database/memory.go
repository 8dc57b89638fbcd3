package database

import (
	"context"
	"sync"
	"time"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

type resultKey struct {
	testID        string
	studentNumber string
}

// MemoryStore is an in-process Store used by tests and by local runs without
// a database. The mutex gives UpsertIfHigherScore the same per-key atomicity
// the Postgres guard predicate provides.
type MemoryStore struct {
	mu      sync.Mutex
	results map[resultKey]models.TestResult
	imports map[int]models.ImportRecord
	nextID  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results: make(map[resultKey]models.TestResult),
		imports: make(map[int]models.ImportRecord),
		nextID:  1,
	}
}

func (s *MemoryStore) CreateTables(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) UpsertIfHigherScore(ctx context.Context, record *models.TestResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resultKey{testID: record.TestID, studentNumber: record.StudentNumber}
	existing, ok := s.results[key]
	if ok && existing.ObtainedMarks >= record.ObtainedMarks {
		return false, nil
	}

	s.results[key] = *record
	return true, nil
}

func (s *MemoryStore) ListByTestID(ctx context.Context, testID string) ([]models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.TestResult
	for key, result := range s.results {
		if key.testID == testID {
			results = append(results, result)
		}
	}

	return results, nil
}

func (s *MemoryStore) InsertImportRecord(ctx context.Context, checksum string, receivedAt time.Time, status string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.imports[id] = models.ImportRecord{
		ID:         id,
		Checksum:   checksum,
		ReceivedAt: receivedAt,
		Status:     status,
	}

	return id, nil
}

func (s *MemoryStore) UpdateImportStatus(ctx context.Context, importID int, status string, recordCount int, errors any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.imports[importID]
	if !ok {
		return nil
	}
	record.Status = status
	record.RecordCount = recordCount
	s.imports[importID] = record

	return nil
}

func (s *MemoryStore) IsDocumentAlreadyImported(ctx context.Context, checksum string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.imports {
		if record.Checksum == checksum && record.Status == IMPORT_STATUS_DONE {
			return true, nil
		}
	}

	return false, nil
}
