package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/okuzmin/gradstats/app/cleaner"
)

const defaultBaseURL = "https://www.thegradcafe.com"

// Scraper pulls admission results from the GradCafe survey pages and turns
// them into raw records for the cleaning pipeline.
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
	delay     time.Duration
	maxPages  int
}

func NewScraper(userAgent string, delay time.Duration, maxPages int) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		delay:     delay,
		maxPages:  maxPages,
	}
}

// Run fetches up to maxPages survey pages, pausing between requests. Pages
// that fail to parse are skipped with a warning; a fetch failure aborts the
// run.
func (s *Scraper) Run(ctx context.Context) ([]cleaner.RawRecord, error) {
	var records []cleaner.RawRecord

	for page := 1; page <= s.maxPages; page++ {
		url := fmt.Sprintf("%s/survey/?page=%d", s.baseURL, page)

		data, err := s.fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		pageRecords, err := ParsePage(data, s.baseURL)
		if err != nil {
			slog.Warn("Failed to parse survey page", "page", page, "error", err)
			continue
		}

		slog.Debug("Scraped survey page", "page", page, "records", len(pageRecords))
		records = append(records, pageRecords...)

		if page < s.maxPages && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	slog.Info("Scrape complete", "pages", s.maxPages, "records", len(records))
	return records, nil
}

func (s *Scraper) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
