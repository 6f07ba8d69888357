package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okuzmin/gradstats/app/cleaner"
	"github.com/okuzmin/gradstats/app/database"
)

// Result reports the outcome of one ingestion run.
type Result struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
}

// Processor runs one ingestion pass: pull raw records from the source, clean
// each one, and load the batch idempotently. The processor itself is
// stateless; concurrent-run gating belongs to the serving layer.
type Processor struct {
	source  RecordSource
	cleaner *cleaner.Cleaner
	store   database.ApplicantStore
}

func NewProcessor(source RecordSource, c *cleaner.Cleaner, store database.ApplicantStore) *Processor {
	return &Processor{
		source:  source,
		cleaner: c,
		store:   store,
	}
}

// Run executes the pipeline. Source failures (including a missing data file)
// propagate; cleaning never fails; an insert failure aborts the batch.
func (p *Processor) Run(ctx context.Context) (Result, error) {
	startTime := time.Now()

	raws, err := p.source.Run(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch raw records: %w", err)
	}

	records := make([]cleaner.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, p.cleaner.Run(raw))
	}

	inserted, err := p.store.InsertApplicants(records)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load records: %w", err)
	}

	result := Result{Total: len(raws), Inserted: inserted}
	slog.Info("Ingestion complete",
		"total", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Total-result.Inserted,
		"duration", time.Since(startTime))

	return result, nil
}
