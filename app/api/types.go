package api

import (
	"context"

	"github.com/okuzmin/gradstats/app/analysis"
	"github.com/okuzmin/gradstats/app/database"
	"github.com/okuzmin/gradstats/app/ingest"
)

type IngestRunner interface {
	Run(ctx context.Context) (ingest.Result, error)
}

var _ IngestRunner = (*ingest.Processor)(nil)

type Handler struct {
	engine    *analysis.Engine
	store     database.ApplicantStore
	processor IngestRunner

	// single-slot gate: one ingestion at a time, later requests rejected
	busy chan struct{}
}
