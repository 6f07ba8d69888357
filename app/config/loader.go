package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the report configuration.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the report configuration file. A missing file is not an error:
// the built-in defaults describe the standard Fall 2026 report.
func (l *Loader) Load() (*Report, error) {
	report := DefaultReport()

	if l.path == "" {
		return report, nil
	}
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		slog.Info("Report configuration not found, using defaults", "path", l.path)
		return report, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report configuration: %w", err)
	}

	if err := yaml.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(report)

	if err := l.validate(report); err != nil {
		return nil, fmt.Errorf("invalid report configuration %s: %w", l.path, err)
	}

	slog.Info("Loaded report configuration", "path", l.path, "term", report.Term)
	return report, nil
}

// DefaultReport returns the report definition used when no configuration
// file is provided.
func DefaultReport() *Report {
	return &Report{
		Term:            "Fall 2026",
		TopUniversities: 5,
		ProgramCount: ProgramCount{
			Label:           "JHU Masters CS Applicants",
			ProgramContains: []string{"Johns Hopkins", "Computer Science"},
			Degree:          "Masters",
		},
		AcceptedCohort: AcceptedCohort{
			Label:           "Fall 2026 Accepted PhD CS at Georgetown/MIT/Stanford/CMU",
			Degree:          "PhD",
			ProgramContains: "Computer Science",
			Universities:    []string{"Georgetown", "MIT", "Stanford", "Carnegie Mellon"},
		},
	}
}

// setDefaults applies default values to partially specified configurations.
func (l *Loader) setDefaults(report *Report) {
	defaults := DefaultReport()

	if report.Term == "" {
		report.Term = defaults.Term
	}
	if report.TopUniversities == 0 {
		report.TopUniversities = defaults.TopUniversities
	}
	if report.ProgramCount.Label == "" {
		report.ProgramCount = defaults.ProgramCount
	}
	if report.AcceptedCohort.Label == "" {
		report.AcceptedCohort = defaults.AcceptedCohort
	}
}

// validate validates the configuration.
func (l *Loader) validate(report *Report) error {
	if report.Term == "" {
		return fmt.Errorf("report term is required")
	}
	if report.TopUniversities < 0 {
		return fmt.Errorf("top_universities must be non-negative")
	}
	if len(report.ProgramCount.ProgramContains) == 0 {
		return fmt.Errorf("program_count must have at least one program substring")
	}
	if report.ProgramCount.Degree == "" {
		return fmt.Errorf("program_count degree is required")
	}
	if report.AcceptedCohort.ProgramContains == "" {
		return fmt.Errorf("accepted_cohort program substring is required")
	}
	if len(report.AcceptedCohort.Universities) == 0 {
		return fmt.Errorf("accepted_cohort must list at least one university")
	}
	return nil
}
