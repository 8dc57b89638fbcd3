package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

func ConnectDB(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	return dbpool, nil
}

type PostgresStore struct {
	dbpool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{dbpool: pool}
}

func (s *PostgresStore) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS test_results (
			test_id TEXT NOT NULL,
			student_number TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			scanned_on TEXT,
			available_marks INTEGER NOT NULL,
			obtained_marks INTEGER NOT NULL,
			PRIMARY KEY (test_id, student_number)
		);`,
		`CREATE TABLE IF NOT EXISTS import_records (
			id SERIAL PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			received_at TIMESTAMP NOT NULL,
			status VARCHAR(50) NOT NULL CHECK (status IN ('PROCESSING', 'DONE', 'DONE_WITH_ERRORS')),
			record_count INTEGER NOT NULL DEFAULT 0,
			errors jsonb
		);`,
		`CREATE INDEX IF NOT EXISTS idx_import_records_checksum ON import_records (checksum);`,
	}

	for _, query := range queries {
		if _, err := s.dbpool.Exec(ctx, query); err != nil {
			return fmt.Errorf("error creating tables: %w", err)
		}
	}

	return nil
}

// UpsertIfHigherScore inserts the record, or replaces the stored row for the
// same (test_id, student_number) key when the incoming obtained marks are
// strictly greater. The guard predicate lives in the statement itself so the
// database enforces the policy atomically; there is no read-then-write window.
// Equal scores leave the stored row untouched, so the first write wins ties.
func (s *PostgresStore) UpsertIfHigherScore(ctx context.Context, record *models.TestResult) (bool, error) {
	query := `
	INSERT INTO test_results (test_id, student_number, first_name, last_name, scanned_on, available_marks, obtained_marks)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (test_id, student_number) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		scanned_on = EXCLUDED.scanned_on,
		available_marks = EXCLUDED.available_marks,
		obtained_marks = EXCLUDED.obtained_marks
	WHERE test_results.obtained_marks < EXCLUDED.obtained_marks;`

	tag, err := s.dbpool.Exec(ctx, query,
		record.TestID, record.StudentNumber, record.FirstName, record.LastName,
		record.ScannedOn, record.AvailableMarks, record.ObtainedMarks)
	if err != nil {
		return false, fmt.Errorf("%w: error upserting test result: %v", models.ErrStorageUnavailable, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) ListByTestID(ctx context.Context, testID string) ([]models.TestResult, error) {
	query := `
	SELECT test_id, student_number, first_name, last_name, scanned_on, available_marks, obtained_marks
	FROM test_results
	WHERE test_id = $1;`

	rows, err := s.dbpool.Query(ctx, query, testID)
	if err != nil {
		return nil, fmt.Errorf("%w: error listing test results: %v", models.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var results []models.TestResult
	for rows.Next() {
		var r models.TestResult
		if err := rows.Scan(&r.TestID, &r.StudentNumber, &r.FirstName, &r.LastName,
			&r.ScannedOn, &r.AvailableMarks, &r.ObtainedMarks); err != nil {
			return nil, fmt.Errorf("%w: error scanning test result: %v", models.ErrStorageUnavailable, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating test results: %v", models.ErrStorageUnavailable, err)
	}

	return results, nil
}

func (s *PostgresStore) InsertImportRecord(ctx context.Context, checksum string, receivedAt time.Time, status string) (int, error) {
	query := `
	INSERT INTO import_records (checksum, received_at, status)
	VALUES ($1, $2, $3)
	RETURNING id;`

	var importID int
	err := s.dbpool.QueryRow(ctx, query, checksum, receivedAt, status).Scan(&importID)
	if err != nil {
		return 0, fmt.Errorf("%w: error inserting import record: %v", models.ErrStorageUnavailable, err)
	}

	return importID, nil
}

func (s *PostgresStore) UpdateImportStatus(ctx context.Context, importID int, status string, recordCount int, errors any) error {
	query := `
	UPDATE import_records
	SET status = $1,
		record_count = $2,
		errors = $3
	WHERE id = $4;`

	_, err := s.dbpool.Exec(ctx, query, status, recordCount, errors, importID)
	if err != nil {
		return fmt.Errorf("%w: error updating import status: %v", models.ErrStorageUnavailable, err)
	}

	return nil
}

func (s *PostgresStore) IsDocumentAlreadyImported(ctx context.Context, checksum string) (bool, error) {
	query := `
	SELECT id
	FROM import_records
	WHERE checksum = $1 AND status = 'DONE';`

	var id int
	err := s.dbpool.QueryRow(ctx, query, checksum).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("%w: error finding import record by checksum: %v", models.ErrStorageUnavailable, err)
	}

	return true, nil
}
