package database

import (
	"time"
)

// Applicant is one stored admission result row. Nil pointers map to NULL
// columns. Rows are written once by the loader and never updated in place.
type Applicant struct {
	ID            int64
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
	CreatedAt     time.Time
}
