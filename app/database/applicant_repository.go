package database

import (
	"fmt"

	"github.com/okuzmin/gradstats/app/cleaner"
)

// ApplicantRepository handles database operations for applicant records.
type ApplicantRepository struct {
	db *DB
}

func NewApplicantRepository(db *DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// InsertApplicants inserts a batch of cleaned records, skipping any whose url
// already exists. All values are bound as parameters. The batch runs in one
// transaction: an unexpected insert failure rolls the whole batch back rather
// than leaving a partial load behind. Returns the number of rows actually
// inserted (skipped duplicates are not counted).
func (r *ApplicantRepository) InsertApplicants(records []cleaner.Record) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO applicants (
			program, comments, date_added, url, status, term,
			us_or_international, gpa, gre, gre_v, gre_aw, degree,
			llm_generated_program, llm_generated_university
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, rec := range records {
		res, err := stmt.Exec(
			rec.Program, rec.Comments, rec.DateAdded, rec.URL, rec.Status,
			rec.Term, rec.Citizenship, rec.GPA, rec.GRE, rec.GREVerbal,
			rec.GREWriting, rec.Degree, rec.LLMProgram, rec.LLMUniversity,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert record %d: %w", i, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}

	return inserted, nil
}

// GetApplicantCount returns the total number of stored rows.
func (r *ApplicantRepository) GetApplicantCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM applicants").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get applicant count: %w", err)
	}
	return count, nil
}

// GetAllApplicants returns every stored row, newest first.
func (r *ApplicantRepository) GetAllApplicants() ([]Applicant, error) {
	rows, err := r.db.Query(`
		SELECT p_id, program, comments, date_added, url, status, term,
		       us_or_international, gpa, gre, gre_v, gre_aw, degree,
		       llm_generated_program, llm_generated_university, created_at
		FROM applicants
		ORDER BY p_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicants: %w", err)
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		var a Applicant
		err := rows.Scan(
			&a.ID, &a.Program, &a.Comments, &a.DateAdded, &a.URL, &a.Status,
			&a.Term, &a.Citizenship, &a.GPA, &a.GRE, &a.GREVerbal,
			&a.GREWriting, &a.Degree, &a.LLMProgram, &a.LLMUniversity,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant row: %w", err)
		}
		applicants = append(applicants, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicant rows: %w", err)
	}

	return applicants, nil
}

// TruncateApplicants removes all rows. Used for test isolation only.
func (r *ApplicantRepository) TruncateApplicants() error {
	if _, err := r.db.Exec("DELETE FROM applicants"); err != nil {
		return fmt.Errorf("failed to truncate applicants: %w", err)
	}
	return nil
}
