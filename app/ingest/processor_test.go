package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/okuzmin/gradstats/app/cleaner"
	"github.com/okuzmin/gradstats/app/database"
)

type stubSource struct {
	records []cleaner.RawRecord
	err     error
}

func (s *stubSource) Run(_ context.Context) ([]cleaner.RawRecord, error) {
	return s.records, s.err
}

type stubStore struct {
	inserted []cleaner.Record
	err      error
}

func (s *stubStore) InsertApplicants(records []cleaner.Record) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.inserted = append(s.inserted, records...)
	return len(records), nil
}

func (s *stubStore) GetApplicantCount() (int, error) { return len(s.inserted), nil }

func (s *stubStore) GetAllApplicants() ([]database.Applicant, error) { return nil, nil }

func (s *stubStore) TruncateApplicants() error { s.inserted = nil; return nil }

func TestProcessor_Run(t *testing.T) {
	source := &stubSource{records: []cleaner.RawRecord{
		{"url": "u1", "status": "Accepted via email", "gpa": "3.9"},
		{"url": "u2", "status": "REJECTED"},
	}}
	store := &stubStore{}

	processor := NewProcessor(source, cleaner.NewCleaner(), store)

	result, err := processor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Total != 2 || result.Inserted != 2 {
		t.Errorf("Expected total=2 inserted=2, got %+v", result)
	}

	if len(store.inserted) != 2 {
		t.Fatalf("Expected 2 cleaned records stored, got %d", len(store.inserted))
	}
	if store.inserted[0].Status == nil || *store.inserted[0].Status != "Accepted" {
		t.Errorf("Expected cleaned status 'Accepted', got %v", store.inserted[0].Status)
	}
	if store.inserted[1].Status == nil || *store.inserted[1].Status != "Rejected" {
		t.Errorf("Expected cleaned status 'Rejected', got %v", store.inserted[1].Status)
	}
}

func TestProcessor_SourceErrorPropagates(t *testing.T) {
	source := &stubSource{err: errors.New("missing data file")}
	processor := NewProcessor(source, cleaner.NewCleaner(), &stubStore{})

	if _, err := processor.Run(context.Background()); err == nil {
		t.Error("Expected source error to propagate")
	}
}

func TestProcessor_StoreErrorAbortsRun(t *testing.T) {
	source := &stubSource{records: []cleaner.RawRecord{{"url": "u1"}}}
	store := &stubStore{err: errors.New("constraint violation")}
	processor := NewProcessor(source, cleaner.NewCleaner(), store)

	if _, err := processor.Run(context.Background()); err == nil {
		t.Error("Expected store error to abort the run")
	}
}
