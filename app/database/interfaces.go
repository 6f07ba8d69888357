package database

import (
	"github.com/okuzmin/gradstats/app/cleaner"
)

// ApplicantStore is the storage contract consumed by the ingestion pipeline
// and the HTTP handlers.
type ApplicantStore interface {
	InsertApplicants(records []cleaner.Record) (int, error)
	GetApplicantCount() (int, error)
	GetAllApplicants() ([]Applicant, error)
	TruncateApplicants() error
}

var _ ApplicantStore = (*ApplicantRepository)(nil)
