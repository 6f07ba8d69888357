package cleaner

import (
	"time"
)

// RawRecord is one scraped or file-provided entry before cleaning. Keys may
// use any of the historical field names (see aliases in cleaner.go), values
// are whatever the source produced (string, number, or nil).
type RawRecord map[string]any

// Record is the cleaned, typed applicant entry persisted to storage. Nil
// pointers mean the value was absent or unusable in the raw data.
type Record struct {
	Program       *string
	Comments      *string
	DateAdded     *time.Time
	URL           *string
	Status        *string
	Term          *string
	Citizenship   *string
	GPA           *float64
	GRE           *float64
	GREVerbal     *float64
	GREWriting    *float64
	Degree        *string
	LLMProgram    *string
	LLMUniversity *string
}
