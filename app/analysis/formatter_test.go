package analysis

import (
	"testing"
)

func TestFormatValue_Nil(t *testing.T) {
	if got := FormatValue("Avg GPA (Accepted, Fall 2026)", nil); got != "N/A" {
		t.Errorf("Expected 'N/A' for nil, got '%s'", got)
	}
	var absent *float64
	if got := FormatValue("Avg GPA (Accepted, Fall 2026)", absent); got != "N/A" {
		t.Errorf("Expected 'N/A' for absent scalar, got '%s'", got)
	}
}

func TestFormatValue_PercentageKeys(t *testing.T) {
	if got := FormatValue("International Percentage", 50.0); got != "50.00%" {
		t.Errorf("Expected '50.00%%', got '%s'", got)
	}
	if got := FormatValue("Acceptance Rate Overall (all terms)", 33.33); got != "33.33%" {
		t.Errorf("Expected '33.33%%', got '%s'", got)
	}
	if got := FormatValue("acceptance rate (Fall 2026)", 0.0); got != "0.00%" {
		t.Errorf("Percent match should be case-insensitive, got '%s'", got)
	}
}

func TestFormatValue_PlainNumbers(t *testing.T) {
	if got := FormatValue("Fall 2026 Applicants", 42); got != "42" {
		t.Errorf("Expected '42', got '%s'", got)
	}
	v := 3.5
	if got := FormatValue("Avg GPA (Accepted, Fall 2026)", &v); got != "3.5" {
		t.Errorf("Expected '3.5' without percent sign, got '%s'", got)
	}
}

func TestFormatValue_AveragesTuple(t *testing.T) {
	gpa, gre := 3.74, 328.5
	averages := Averages{GPA: &gpa, GRE: &gre}

	got := FormatValue("Average GPA / GRE / GRE-V / GRE-AW (non-null)", averages)
	if got != "3.74, 328.5, N/A, N/A" {
		t.Errorf("Expected '3.74, 328.5, N/A, N/A', got '%s'", got)
	}
}

func TestFormatValue_Strings(t *testing.T) {
	summary := "MIT: 3; Stanford University: 2"
	if got := FormatValue("Top 5 Universities by # of Entries (LLM)", summary); got != summary {
		t.Errorf("Expected string passthrough, got '%s'", got)
	}
}

func TestFormatResults(t *testing.T) {
	results := map[string]any{
		"Fall 2026 Applicants":     2,
		"International Percentage": 50.0,
	}

	formatted := FormatResults(results)
	if formatted["Fall 2026 Applicants"] != "2" {
		t.Errorf("Unexpected count rendering: %s", formatted["Fall 2026 Applicants"])
	}
	if formatted["International Percentage"] != "50.00%" {
		t.Errorf("Unexpected percentage rendering: %s", formatted["International Percentage"])
	}
}
