package config

// Report describes the statistics the analysis engine computes: which term
// the per-term statistics target, and the filters behind the named cohort
// counts.
type Report struct {
	Term            string         `yaml:"term"`
	TopUniversities int            `yaml:"top_universities"`
	ProgramCount    ProgramCount   `yaml:"program_count"`
	AcceptedCohort  AcceptedCohort `yaml:"accepted_cohort"`
}

// ProgramCount counts applicants whose program text contains every listed
// substring (case-insensitive) and whose degree matches exactly.
type ProgramCount struct {
	Label           string   `yaml:"label"`
	ProgramContains []string `yaml:"program_contains"`
	Degree          string   `yaml:"degree"`
}

// AcceptedCohort counts accepted applicants for the report term whose program
// contains a required substring and whose text mentions any of the listed
// universities. Computed twice: over the scraped program text and over the
// LLM-enriched fields.
type AcceptedCohort struct {
	Label           string   `yaml:"label"`
	Degree          string   `yaml:"degree"`
	ProgramContains string   `yaml:"program_contains"`
	Universities    []string `yaml:"universities"`
}
