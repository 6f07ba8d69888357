package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okuzmin/gradstats/app/cleaner"
)

var termRe = regexp.MustCompile(`(?i)\b(Fall|Spring|Summer|Winter)\s+\d{4}\b`)

// ParsePage extracts admission results from one survey page. Each result is
// a main table row followed by an optional badge row (term, citizenship, GPA,
// GRE scores) and an optional comment row. GRE badges are validated against
// their per-score ranges here, mirroring the rest of the badge cleanup; the
// remaining fields stay raw for the cleaning pipeline.
func ParsePage(data []byte, baseURL string) ([]cleaner.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []cleaner.RawRecord
	var current cleaner.RawRecord

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if link := row.Find(`a[href*="/result/"]`); link.Length() > 0 {
			// main row: starts a new record
			if current != nil {
				records = append(records, current)
			}
			current = parseMainRow(row, link, baseURL)
			return
		}
		if current == nil {
			return
		}

		if badges := row.Find("div.tw-inline-flex"); badges.Length() > 0 {
			parseBadges(badges, current)
			return
		}
		if comment := strings.TrimSpace(row.Find("p").Text()); comment != "" {
			current["comments"] = comment
		}
	})
	if current != nil {
		records = append(records, current)
	}

	return records, nil
}

func parseMainRow(row, link *goquery.Selection, baseURL string) cleaner.RawRecord {
	record := cleaner.RawRecord{}

	cells := row.Find("td")
	university := strings.TrimSpace(cells.Eq(0).Text())
	program := strings.TrimSpace(cells.Eq(1).Find("span").First().Text())
	if program == "" {
		program = strings.TrimSpace(cells.Eq(1).Text())
	}

	switch {
	case program != "" && university != "":
		record["program"] = program + ", " + university
	case program != "":
		record["program"] = program
	case university != "":
		record["program"] = university
	}

	if degree := strings.TrimSpace(cells.Eq(1).Find("span.tw-text-gray-500").Text()); degree != "" {
		record["degree"] = degree
	}
	if dateAdded := strings.TrimSpace(cells.Eq(2).Text()); dateAdded != "" {
		record["date_added"] = dateAdded
	}
	if status := strings.TrimSpace(cells.Eq(3).Text()); status != "" {
		record["status"] = status
	}

	if href, ok := link.Attr("href"); ok {
		if strings.HasPrefix(href, "/") {
			href = baseURL + href
		}
		record["url"] = href
	}

	return record
}

// parseBadges classifies the detail-row badges. Badge prefixes are checked
// longest first so "GRE V 165" is not taken for a combined score.
func parseBadges(badges *goquery.Selection, record cleaner.RawRecord) {
	badges.Each(func(_ int, badge *goquery.Selection) {
		text := strings.Join(strings.Fields(badge.Text()), " ")
		if text == "" {
			return
		}
		upper := strings.ToUpper(text)

		switch {
		case termRe.MatchString(text):
			record["term"] = termRe.FindString(text)
		case strings.HasPrefix(upper, "GRE AW"):
			if v := cleaner.CleanGREWriting(text); v != nil {
				record["gre_aw"] = *v
			}
		case strings.HasPrefix(upper, "GRE V"):
			if v := cleaner.CleanGREVerbal(text); v != nil {
				record["gre_v"] = *v
			}
		case strings.HasPrefix(upper, "GRE"):
			if v := cleaner.CleanGRETotal(text); v != nil {
				record["gre"] = *v
			}
		case strings.HasPrefix(upper, "GPA"):
			record["gpa"] = text
		case strings.Contains(upper, "INTERNATIONAL"), strings.Contains(upper, "AMERICAN"):
			record["citizenship"] = text
		}
	})
}
