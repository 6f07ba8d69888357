package cleaner

// Alias tables for fields whose key changed across scraper generations.
// First present (and non-blank) key wins; order is fixed.
var (
	statusAliases        = []string{"applicant_status", "status"}
	termAliases          = []string{"semester_year_start", "term"}
	citizenshipAliases   = []string{"citizenship", "us_or_international"}
	degreeAliases        = []string{"masters_or_phd", "degree"}
	llmProgramAliases    = []string{"llm-generated-program", "llm_generated_program"}
	llmUniversityAliases = []string{"llm-generated-university", "llm_generated_university"}
)

// Cleaner turns raw applicant entries into typed records. It holds no state,
// so a single Cleaner is safe to use concurrently over a batch.
type Cleaner struct{}

func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Run cleans a single raw record. Fields missing from the raw record, or
// present but unusable, come out nil; cleaning never fails.
func (c *Cleaner) Run(raw RawRecord) Record {
	return Record{
		Program:       CleanText(raw["program"]),
		Comments:      CleanText(raw["comments"]),
		DateAdded:     CleanDate(raw["date_added"]),
		URL:           CleanText(raw["url"]),
		Status:        CleanStatus(firstPresent(raw, statusAliases)),
		Term:          CleanText(firstPresent(raw, termAliases)),
		Citizenship:   CleanCitizenship(firstPresent(raw, citizenshipAliases)),
		GPA:           CleanGPA(raw["gpa"]),
		GRE:           ExtractFloat(raw["gre"]),
		GREVerbal:     ExtractFloat(raw["gre_v"]),
		GREWriting:    ExtractFloat(raw["gre_aw"]),
		Degree:        CleanDegree(firstPresent(raw, degreeAliases)),
		LLMProgram:    CleanText(firstPresent(raw, llmProgramAliases)),
		LLMUniversity: CleanText(firstPresent(raw, llmUniversityAliases)),
	}
}

// firstPresent resolves a field across its historical key names. Nil and
// blank-string values fall through to the next alias.
func firstPresent(raw RawRecord, aliases []string) any {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}
