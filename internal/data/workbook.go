package data

import (
	"context"
	"fmt"
	"sync"

	"rentinfo/internal/core"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads units from the first sheet of a local .xlsx
// workbook. Same caching lifecycle as SheetSource: load on first use,
// re-read only on Refresh.
type WorkbookSource struct {
	path string

	mu     sync.Mutex
	units  []core.Unit
	loaded bool
}

// NewWorkbookSource creates a source for the given workbook path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: path}
}

func (s *WorkbookSource) Units(ctx context.Context) ([]core.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		units, err := s.read()
		if err != nil {
			return nil, err
		}
		s.units = units
		s.loaded = true
	}
	return s.units, nil
}

func (s *WorkbookSource) Unit(ctx context.Context, unitID string) (*core.Unit, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	return findUnit(units, unitID)
}

func (s *WorkbookSource) Refresh(ctx context.Context) ([]core.Unit, error) {
	units, err := s.read()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.units = units
	s.loaded = true
	s.mu.Unlock()
	return units, nil
}

func (s *WorkbookSource) read() ([]core.Unit, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("workbook source: open %s: %w", s.path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("workbook source: read sheet %s: %w", sheetName, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("workbook source: sheet %s has no header row", sheetName)
	}

	units, err := unitsFromRows(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("workbook source: %w", err)
	}
	return units, nil
}
