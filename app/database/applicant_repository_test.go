package database

import (
	"testing"

	"github.com/okuzmin/gradstats/app/cleaner"
)

func newTestDB(t *testing.T) (*DB, *ApplicantRepository) {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return db, NewApplicantRepository(db)
}

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func testBatch() []cleaner.Record {
	return []cleaner.Record{
		{URL: strPtr("u1"), Term: strPtr("Fall 2026"), Status: strPtr("Accepted"), GPA: fPtr(3.9)},
		{URL: strPtr("u2"), Term: strPtr("Fall 2026"), Status: strPtr("Rejected"), GPA: fPtr(3.7)},
		{URL: strPtr("u1"), Term: strPtr("Fall 2026"), Status: strPtr("Accepted"), GPA: fPtr(3.9)},
	}
}

func TestInsertApplicants_SkipsDuplicateURLsInBatch(t *testing.T) {
	_, repo := newTestDB(t)

	inserted, err := repo.InsertApplicants(testBatch())
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if inserted != 2 {
		t.Errorf("Expected 2 inserted (one in-batch duplicate), got %d", inserted)
	}

	count, err := repo.GetApplicantCount()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 stored rows, got %d", count)
	}
}

func TestInsertApplicants_Idempotent(t *testing.T) {
	_, repo := newTestDB(t)

	if _, err := repo.InsertApplicants(testBatch()); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	inserted, err := repo.InsertApplicants(testBatch())
	if err != nil {
		t.Fatalf("Second insert failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("Second run should insert 0 new rows, got %d", inserted)
	}

	count, err := repo.GetApplicantCount()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 stored rows after both runs, got %d", count)
	}
}

func TestInsertApplicants_NilURLsNeverDeduplicated(t *testing.T) {
	_, repo := newTestDB(t)

	records := []cleaner.Record{
		{Term: strPtr("Fall 2026"), Status: strPtr("Accepted")},
		{Term: strPtr("Fall 2026"), Status: strPtr("Accepted")},
	}

	inserted, err := repo.InsertApplicants(records)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if inserted != 2 {
		t.Errorf("Records without url should each be inserted, got %d", inserted)
	}
}

func TestInsertApplicants_EmptyBatch(t *testing.T) {
	_, repo := newTestDB(t)

	inserted, err := repo.InsertApplicants(nil)
	if err != nil {
		t.Fatalf("Empty batch should not fail: %v", err)
	}
	if inserted != 0 {
		t.Errorf("Expected 0 inserted for empty batch, got %d", inserted)
	}
}

func TestGetAllApplicants_RoundTrip(t *testing.T) {
	_, repo := newTestDB(t)

	record := cleaner.Record{
		URL:         strPtr("u1"),
		Program:     strPtr("Computer Science, MIT"),
		Term:        strPtr("Fall 2026"),
		Status:      strPtr("Accepted"),
		Citizenship: strPtr("International"),
		GPA:         fPtr(3.9),
		GRE:         fPtr(330),
	}
	if _, err := repo.InsertApplicants([]cleaner.Record{record}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	applicants, err := repo.GetAllApplicants()
	if err != nil {
		t.Fatalf("GetAllApplicants failed: %v", err)
	}
	if len(applicants) != 1 {
		t.Fatalf("Expected 1 applicant, got %d", len(applicants))
	}

	a := applicants[0]
	if a.URL == nil || *a.URL != "u1" {
		t.Errorf("Unexpected url: %v", a.URL)
	}
	if a.Program == nil || *a.Program != "Computer Science, MIT" {
		t.Errorf("Unexpected program: %v", a.Program)
	}
	if a.GPA == nil || *a.GPA != 3.9 {
		t.Errorf("Unexpected gpa: %v", a.GPA)
	}
	if a.Comments != nil {
		t.Errorf("Expected nil comments, got %v", *a.Comments)
	}
}

func TestTruncateApplicants(t *testing.T) {
	_, repo := newTestDB(t)

	if _, err := repo.InsertApplicants(testBatch()); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.TruncateApplicants(); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}

	count, err := repo.GetApplicantCount()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty table after truncate, got %d rows", count)
	}
}
