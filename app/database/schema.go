package database

import (
	"fmt"
)

// EnsureSchema creates the applicants table and the unique index on url.
// Idempotent; safe to run on every startup. The unique index is what makes
// the loader's insert-or-skip contract hold under concurrent writers.
func EnsureSchema(db *DB) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS applicants (
			p_id INTEGER PRIMARY KEY,
			program TEXT,
			comments TEXT,
			date_added DATE,
			url TEXT,
			status TEXT,
			term TEXT,
			us_or_international TEXT,
			gpa REAL,
			gre REAL,
			gre_v REAL,
			gre_aw REAL,
			degree TEXT,
			llm_generated_program TEXT,
			llm_generated_university TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create applicants table: %w", err)
	}

	// SQLite permits multiple NULLs in a unique index, so rows without a
	// url are never deduplicated against each other.
	uniq := `CREATE UNIQUE INDEX IF NOT EXISTS uq_applicants_url ON applicants(url)`
	if _, err := db.Exec(uniq); err != nil {
		return fmt.Errorf("failed to create url index: %w", err)
	}

	return nil
}
