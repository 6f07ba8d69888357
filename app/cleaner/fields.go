package cleaner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	floatRe = regexp.MustCompile(`\d+(\.\d+)?`)
	intRe   = regexp.MustCompile(`\d+`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// entityReplacer decodes the 6 entities GradCafe markup actually produces.
// Deliberately not html.UnescapeString: anything outside this set must
// survive cleaning unchanged.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

var emptyTokens = map[string]bool{
	"n/a":     true,
	"na":      true,
	"none":    true,
	"unknown": true,
}

// GRE score bounds per score kind. The total and section scales differ, so
// each cleaner carries its own range instead of one shared [130, 340] window.
const (
	greTotalMin   = 260
	greTotalMax   = 340
	greVerbalMin  = 130
	greVerbalMax  = 170
	greWritingMin = 0
	greWritingMax = 6
)

// CleanText normalizes a free-text value: strips NUL bytes and HTML tags,
// decodes common entities, collapses whitespace, and maps blank strings and
// placeholder tokens ("n/a", "na", "none", "unknown") to nil.
func CleanText(value any) *string {
	if value == nil {
		return nil
	}

	s := fmt.Sprint(value)
	s = strings.ReplaceAll(s, "\x00", "")
	s = tagRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	if s == "" || emptyTokens[strings.ToLower(s)] {
		return nil
	}

	return &s
}

// CleanGPA extracts the first numeral from the value and keeps it only when
// it falls inside the 4.0 scale. Unparseable input yields nil, never an error.
func CleanGPA(value any) *float64 {
	return cleanBounded(value, floatRe, 0.0, 4.0)
}

// CleanGRETotal validates a combined GRE score (260-340).
func CleanGRETotal(value any) *float64 {
	return cleanBounded(value, intRe, greTotalMin, greTotalMax)
}

// CleanGREVerbal validates a GRE verbal section score (130-170).
func CleanGREVerbal(value any) *float64 {
	return cleanBounded(value, intRe, greVerbalMin, greVerbalMax)
}

// CleanGREWriting validates a GRE analytical writing score (0-6, half points).
func CleanGREWriting(value any) *float64 {
	return cleanBounded(value, floatRe, greWritingMin, greWritingMax)
}

func cleanBounded(value any, re *regexp.Regexp, min, max float64) *float64 {
	v := extract(value, re)
	if v == nil || *v < min || *v > max {
		return nil
	}
	return v
}

// ExtractFloat pulls the first numeral out of any scalar with no range
// restriction. Numeric values pass through directly. Used on the load path,
// where bounds checking is the cleaner's job, not the loader's.
func ExtractFloat(value any) *float64 {
	return extract(value, floatRe)
}

func extract(value any, re *regexp.Regexp) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}

	match := re.FindString(fmt.Sprint(value))
	if match == "" {
		return nil
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &f
}

// CleanDate accepts ISO YYYY-MM-DD only. Strings of the right shape that
// describe a non-existent calendar date (e.g. 2026-02-31) come back nil
// rather than being rounded to a nearby valid date.
func CleanDate(value any) *time.Time {
	if value == nil {
		return nil
	}

	s := strings.TrimSpace(fmt.Sprint(value))
	if !dateRe.MatchString(s) {
		return nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// CleanStatus maps a decision string onto the closed status set. Substring
// checks run in priority order; unrecognized text passes through trimmed.
func CleanStatus(value any) *string {
	t := CleanText(value)
	if t == nil {
		return nil
	}

	lower := strings.ToLower(*t)
	switch {
	case strings.Contains(lower, "accept"):
		return ptr("Accepted")
	case strings.Contains(lower, "reject"), strings.Contains(lower, "deny"):
		return ptr("Rejected")
	case strings.Contains(lower, "wait"):
		return ptr("Waitlisted")
	case strings.Contains(lower, "interview"):
		return ptr("Interview")
	}

	return t
}

// CleanCitizenship maps a residency string to International or American.
// Stricter than CleanStatus: unrecognized text becomes nil, not pass-through.
func CleanCitizenship(value any) *string {
	t := CleanText(value)
	if t == nil {
		return nil
	}

	lower := strings.ToLower(*t)
	switch {
	case strings.Contains(lower, "international"):
		return ptr("International")
	case strings.Contains(lower, "american"),
		strings.Contains(lower, "domestic"),
		strings.Contains(lower, "u.s"),
		lower == "us":
		return ptr("American")
	}

	return nil
}

var phdVariants = []string{"PHD", "PH.D", "PH.D.", "DOCTORATE", "DOCTORAL"}
var mastersVariants = []string{"MASTERS", "MASTER", "MASTER'S", "MS", "M.S.", "MA", "M.A.", "MSC", "M.SC."}

// CleanDegree maps a degree string to PhD or Masters via its variant lists;
// anything else passes through title-cased.
func CleanDegree(value any) *string {
	t := CleanText(value)
	if t == nil {
		return nil
	}

	upper := strings.ToUpper(*t)
	for _, v := range phdVariants {
		if strings.Contains(upper, v) {
			return ptr("PhD")
		}
	}
	for _, v := range mastersVariants {
		if strings.Contains(upper, v) {
			return ptr("Masters")
		}
	}

	return ptr(cases.Title(language.English).String(*t))
}

func ptr(s string) *string {
	return &s
}
