package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/database"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/parser"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/pkg/checksum"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Service orchestrates one document import: parse, audit, reconcile.
type Service struct {
	store  database.Store
	engine *MergeEngine
}

func NewService(store database.Store) *Service {
	return &Service{
		store:  store,
		engine: NewMergeEngine(store),
	}
}

// Import runs the full ingestion pipeline for one submitted document.
// Parsing rejects the whole document before anything is persisted, so an
// invalid batch never partially lands. A document whose checksum already
// completed is acknowledged without re-reconciling; reconciliation is
// idempotent, this just skips the writes.
func (s *Service) Import(ctx context.Context, doc []byte) (*models.ImportReceipt, error) {
	records, err := parser.Parse(doc)
	if err != nil {
		return nil, err
	}

	docChecksum := checksum.DocumentChecksum(doc)
	alreadyImported, err := s.store.IsDocumentAlreadyImported(ctx, docChecksum)
	if err != nil {
		return nil, err
	}
	if alreadyImported {
		log.Printf("Document %s already imported, skipping %d records", docChecksum, len(records))
		return &models.ImportReceipt{Records: len(records), Skipped: len(records)}, nil
	}

	importID, err := s.store.InsertImportRecord(ctx, docChecksum, timeNow(), database.IMPORT_STATUS_PROCESSING)
	if err != nil {
		return nil, err
	}

	receipt, failures := s.engine.Reconcile(ctx, records)

	status := database.IMPORT_STATUS_DONE
	if len(failures) > 0 {
		status = database.IMPORT_STATUS_DONE_WITH_ERRORS
	}
	if err := s.store.UpdateImportStatus(ctx, importID, status, receipt.Records, failures); err != nil {
		log.Printf("Failed to update status for import %d: %v", importID, err)
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			log.Printf("Import %d: %v", importID, failure)
		}
		return receipt, failures[0].Err
	}

	return receipt, nil
}
