package analysis

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/okuzmin/gradstats/app/config"
	"github.com/okuzmin/gradstats/app/database"
)

// Engine computes the named summary statistics over the applicants table.
// Every statistic degrades to a safe value (0 or absent) on an empty store;
// ratio statistics are zero-guarded in SQL, never in a division at runtime.
type Engine struct {
	db     *database.DB
	report *config.Report
}

func NewEngine(db *database.DB, report *config.Report) *Engine {
	return &Engine{db: db, report: report}
}

// Averages holds the per-column averages of statistic 3. Nil entries mean no
// rows carried that score.
type Averages struct {
	GPA        *float64
	GRE        *float64
	GREVerbal  *float64
	GREWriting *float64
}

// Run computes all statistics and returns them keyed by display name.
// Values are int, float64, *float64 (nullable average), Averages, or string.
func (e *Engine) Run() (map[string]any, error) {
	term := e.report.Term
	results := make(map[string]any)

	termApplicants, err := e.scalarInt(
		"SELECT COUNT(*) FROM applicants WHERE TRIM(term) = ?", term)
	if err != nil {
		return nil, err
	}
	results[fmt.Sprintf("%s Applicants", term)] = termApplicants

	internationalPct, err := e.scalarFloat(`
		SELECT COALESCE(ROUND(
			100.0 * SUM(CASE WHEN us_or_international = ? THEN 1 ELSE 0 END)
				/ NULLIF(COUNT(*), 0), 2), 0)
		FROM applicants`, "International")
	if err != nil {
		return nil, err
	}
	results["International Percentage"] = zeroGuard(internationalPct)

	averages, err := e.averages()
	if err != nil {
		return nil, err
	}
	results["Average GPA / GRE / GRE-V / GRE-AW (non-null)"] = averages

	avgGPAAmerican, err := e.scalarFloat(`
		SELECT ROUND(AVG(gpa), 2)
		FROM applicants
		WHERE TRIM(term) = ? AND us_or_international = ? AND gpa IS NOT NULL`,
		term, "American")
	if err != nil {
		return nil, err
	}
	results[fmt.Sprintf("Avg GPA (American, %s)", term)] = avgGPAAmerican

	acceptanceRate, err := e.scalarFloat(`
		SELECT CASE
			WHEN (SELECT COUNT(*) FROM applicants WHERE TRIM(term) = ?) = 0 THEN 0
			ELSE ROUND(
				100.0 * COUNT(*)
					/ (SELECT COUNT(*) FROM applicants WHERE TRIM(term) = ?), 2)
		END
		FROM applicants
		WHERE TRIM(term) = ? AND status = ?`,
		term, term, term, "Accepted")
	if err != nil {
		return nil, err
	}
	results[fmt.Sprintf("Acceptance Rate (%s)", term)] = zeroGuard(acceptanceRate)

	avgGPAAccepted, err := e.scalarFloat(`
		SELECT ROUND(AVG(gpa), 2)
		FROM applicants
		WHERE TRIM(term) = ? AND status = ? AND gpa IS NOT NULL`,
		term, "Accepted")
	if err != nil {
		return nil, err
	}
	results[fmt.Sprintf("Avg GPA (Accepted, %s)", term)] = avgGPAAccepted

	programCount, err := e.programCount()
	if err != nil {
		return nil, err
	}
	results[e.report.ProgramCount.Label] = programCount

	cohortPrograms, err := e.acceptedCohort(false)
	if err != nil {
		return nil, err
	}
	results[e.report.AcceptedCohort.Label+" (program text)"] = cohortPrograms

	cohortLLM, err := e.acceptedCohort(true)
	if err != nil {
		return nil, err
	}
	results[e.report.AcceptedCohort.Label+" (LLM fields)"] = cohortLLM

	topUniversities, err := e.topUniversities()
	if err != nil {
		return nil, err
	}
	results["Top 5 Universities by # of Entries (LLM)"] = topUniversities

	overallRate, err := e.scalarFloat(`
		SELECT COALESCE(ROUND(
			100.0 * SUM(CASE WHEN status = ? THEN 1 ELSE 0 END)
				/ NULLIF(COUNT(*), 0), 2), 0)
		FROM applicants`, "Accepted")
	if err != nil {
		return nil, err
	}
	results["Acceptance Rate Overall (all terms)"] = zeroGuard(overallRate)

	return results, nil
}

// programCount implements the configured program/degree count (statistic 7).
func (e *Engine) programCount() (int, error) {
	pc := e.report.ProgramCount

	var conditions []string
	var args []any
	for _, substr := range pc.ProgramContains {
		conditions = append(conditions, "program LIKE ?")
		args = append(args, contains(substr))
	}
	conditions = append(conditions, "degree = ?")
	args = append(args, pc.Degree)

	query := "SELECT COUNT(*) FROM applicants WHERE " + strings.Join(conditions, " AND ")
	return e.scalarInt(query, args...)
}

// acceptedCohort implements statistics 8 and 9: accepted applicants for the
// report term matching the configured degree, required program substring, and
// any of the alternate university substrings. The llm flag switches between
// the scraped program text and the LLM-enriched columns.
func (e *Engine) acceptedCohort(llm bool) (int, error) {
	ac := e.report.AcceptedCohort

	programCol, universityCol := "program", "program"
	if llm {
		programCol, universityCol = "llm_generated_program", "llm_generated_university"
	}

	alternates := make([]string, 0, len(ac.Universities))
	args := []any{e.report.Term, "Accepted", ac.Degree, contains(ac.ProgramContains)}
	for _, u := range ac.Universities {
		alternates = append(alternates, universityCol+" LIKE ?")
		args = append(args, contains(u))
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM applicants
		WHERE TRIM(term) = ?
		  AND status = ?
		  AND degree = ?
		  AND %s LIKE ?
		  AND (%s)`,
		programCol, strings.Join(alternates, " OR "))

	return e.scalarInt(query, args...)
}

// topUniversities renders the top-N grouped counts of the LLM university
// column as a single "name: count; name: count" summary string.
func (e *Engine) topUniversities() (string, error) {
	limit := clampLimit(e.report.TopUniversities, 1, 100)

	rows, err := e.db.Query(`
		SELECT llm_generated_university, COUNT(*) AS entries
		FROM applicants
		WHERE llm_generated_university IS NOT NULL
		GROUP BY llm_generated_university
		ORDER BY entries DESC, llm_generated_university
		LIMIT ?`, limit)
	if err != nil {
		return "", fmt.Errorf("failed to query top universities: %w", err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var university string
		var entries int
		if err := rows.Scan(&university, &entries); err != nil {
			return "", fmt.Errorf("failed to scan university row: %w", err)
		}
		parts = append(parts, fmt.Sprintf("%s: %d", university, entries))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating university rows: %w", err)
	}

	return strings.Join(parts, "; "), nil
}

func (e *Engine) averages() (Averages, error) {
	var gpa, gre, greV, greAW sql.NullFloat64
	err := e.db.QueryRow(`
		SELECT ROUND(AVG(gpa), 2), ROUND(AVG(gre), 2),
		       ROUND(AVG(gre_v), 2), ROUND(AVG(gre_aw), 2)
		FROM applicants
		WHERE gpa IS NOT NULL OR gre IS NOT NULL
		   OR gre_v IS NOT NULL OR gre_aw IS NOT NULL
	`).Scan(&gpa, &gre, &greV, &greAW)
	if err != nil {
		return Averages{}, fmt.Errorf("failed to compute averages: %w", err)
	}

	return Averages{
		GPA:        nullable(gpa),
		GRE:        nullable(gre),
		GREVerbal:  nullable(greV),
		GREWriting: nullable(greAW),
	}, nil
}

func (e *Engine) scalarInt(query string, args ...any) (int, error) {
	var value int
	if err := e.db.QueryRow(query, args...).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to run count query: %w", err)
	}
	return value, nil
}

func (e *Engine) scalarFloat(query string, args ...any) (*float64, error) {
	var value sql.NullFloat64
	if err := e.db.QueryRow(query, args...).Scan(&value); err != nil {
		return nil, fmt.Errorf("failed to run scalar query: %w", err)
	}
	return nullable(value), nil
}

// clampLimit keeps a LIMIT inside a safe range.
func clampLimit(value, minimum, maximum int) int {
	return max(minimum, min(maximum, value))
}

// zeroGuard turns an absent ratio into a defined 0.
func zeroGuard(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func contains(substr string) string {
	return "%" + substr + "%"
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
