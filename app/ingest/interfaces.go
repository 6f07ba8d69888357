package ingest

import (
	"context"

	"github.com/okuzmin/gradstats/app/cleaner"
)

// RecordSource produces a finite batch of raw applicant records. Implemented
// by the file source here and by the GradCafe scraper.
type RecordSource interface {
	Run(ctx context.Context) ([]cleaner.RawRecord, error)
}
