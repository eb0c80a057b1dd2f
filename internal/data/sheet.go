package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"rentinfo/internal/core"
)

// SheetSource fetches units from a published spreadsheet CSV URL and
// caches them in memory. The cache fills on first use and is replaced
// wholesale by Refresh.
type SheetSource struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	units  []core.Unit
	loaded bool
}

// NewSheetSource creates a source for the given published-CSV URL.
func NewSheetSource(url string) *SheetSource {
	return &SheetSource{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SheetSource) Units(ctx context.Context) ([]core.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		units, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.units = units
		s.loaded = true
	}
	return s.units, nil
}

func (s *SheetSource) Unit(ctx context.Context, unitID string) (*core.Unit, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	return findUnit(units, unitID)
}

func (s *SheetSource) Refresh(ctx context.Context) ([]core.Unit, error) {
	units, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.units = units
	s.loaded = true
	s.mu.Unlock()
	return units, nil
}

// fetch downloads and parses the published CSV.
func (s *SheetSource) fetch(ctx context.Context) ([]core.Unit, error) {
	if s.url == "" {
		return nil, fmt.Errorf("sheet source: no URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("sheet source: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet source: fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet source: fetch %s: unexpected status %s", s.url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet source: read body: %w", err)
	}

	return parseCSV(string(body))
}

// parseCSV turns raw CSV text (possibly BOM-prefixed) into units.
func parseCSV(content string) ([]core.Unit, error) {
	content = strings.TrimPrefix(content, "\ufeff")

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet source: parse CSV: %w", err)
	}
	if len(allRows) < 1 {
		return nil, fmt.Errorf("sheet source: CSV has no header row")
	}

	return unitsFromRows(allRows[0], allRows[1:])
}
