package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/aggregate"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/ingestion"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/metrics"
	"github.com/anisjonischkeit/Stile-Markr-Coding-Test/internal/models"
)

type ResultsService struct {
	Importer       *ingestion.Service
	Aggregator     *aggregate.Service
	Metrics        *metrics.Metrics
	MaxImportBytes int
}

func NewResultsService(importer *ingestion.Service, aggregator *aggregate.Service, m *metrics.Metrics, maxImportBytes int) *ResultsService {
	return &ResultsService{
		Importer:       importer,
		Aggregator:     aggregator,
		Metrics:        m,
		MaxImportBytes: maxImportBytes,
	}
}

// ImportResults accepts one XML document of machine-scored results and
// reconciles it into the store. The whole document is rejected on any
// malformed or schema-violating entry; nothing from a rejected document is
// persisted.
func (h *ResultsService) ImportResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(h.MaxImportBytes)+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, map[string]any{"error": "failed to read request body"})
		return
	}
	if len(body) > h.MaxImportBytes {
		writeError(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "document too large"})
		return
	}

	receipt, err := h.Importer.Import(r.Context(), body)
	if err != nil {
		var schemaErr *models.SchemaError
		switch {
		case errors.Is(err, models.ErrMalformedInput):
			h.Metrics.DocumentsReceived.WithLabelValues("malformed").Inc()
			writeError(w, http.StatusBadRequest, map[string]any{"error": "invalid xml"})
		case errors.As(err, &schemaErr):
			h.Metrics.DocumentsReceived.WithLabelValues("invalid_schema").Inc()
			writeError(w, http.StatusBadRequest, map[string]any{
				"error":  "schema violation",
				"fields": schemaErr.Fields,
			})
		case errors.Is(err, models.ErrStorageUnavailable):
			h.Metrics.DocumentsReceived.WithLabelValues("storage_error").Inc()
			writeError(w, http.StatusServiceUnavailable, map[string]any{"error": "storage unavailable, retry later"})
		default:
			log.Printf("Unexpected import error: %v", err)
			writeError(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		}
		return
	}

	h.Metrics.DocumentsReceived.WithLabelValues("accepted").Inc()
	h.Metrics.RecordsReconciled.WithLabelValues("applied").Add(float64(receipt.Applied))
	h.Metrics.RecordsReconciled.WithLabelValues("skipped").Add(float64(receipt.Skipped))

	writeJSON(w, http.StatusOK, receipt)
}

// GetAggregate serves summary statistics for one test.
func (h *ResultsService) GetAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/results/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "aggregate" {
		writeError(w, http.StatusBadRequest, map[string]any{
			"error": "test ID is required in the URL path /results/{testId}/aggregate",
		})
		return
	}
	testID := parts[0]

	stats, err := h.Aggregator.Aggregate(r.Context(), testID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTestNotFound):
			h.Metrics.AggregateRequests.WithLabelValues("not_found").Inc()
			writeError(w, http.StatusNotFound, map[string]any{"error": "no results for test"})
		case errors.Is(err, models.ErrStorageUnavailable):
			h.Metrics.AggregateRequests.WithLabelValues("storage_error").Inc()
			writeError(w, http.StatusServiceUnavailable, map[string]any{"error": "storage unavailable, retry later"})
		default:
			log.Printf("Unexpected aggregate error: %v", err)
			writeError(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		}
		return
	}

	h.Metrics.AggregateRequests.WithLabelValues("served").Inc()
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, payload map[string]any) {
	writeJSON(w, status, payload)
}
