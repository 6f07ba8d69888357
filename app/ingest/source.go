package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/okuzmin/gradstats/app/cleaner"
)

// FileSource reads raw records from a local JSON array or JSONL file. Used in
// production mode where the scraper output is provided ahead of time.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Run loads the file and decodes it. A missing file is fatal to the
// ingestion run and propagates; an empty file yields an empty batch.
func (s *FileSource) Run(_ context.Context) ([]cleaner.RawRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("missing data file %s: %w", s.path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, "[") {
		var records []cleaner.RawRecord
		if err := json.Unmarshal([]byte(text), &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return records, nil
	}

	// JSONL: one record per non-blank line
	var records []cleaner.RawRecord
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var record cleaner.RawRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSONL line %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}
