package app

import (
	"context"
	"fmt"
	"strings"

	"rentinfo/internal/core"
	"rentinfo/internal/data"
	"rentinfo/internal/render"
)

type appService struct {
	source data.UnitSource
	html   *render.HTMLRenderer
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(source data.UnitSource, html *render.HTMLRenderer) ApplicationService {
	return &appService{source: source, html: html}
}

func (s *appService) ListUnits(ctx context.Context) (*UnitListResult, error) {
	units, err := s.source.Units(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UnitSummary, 0, len(units))
	for _, u := range units {
		summaries = append(summaries, UnitSummary{
			UnitID:        u.UnitID,
			StreetAddress: u.StreetAddress,
			UnitNumber:    u.UnitNumber,
		})
	}
	return &UnitListResult{Units: summaries}, nil
}

func (s *appService) GetUnit(ctx context.Context, unitID string) (*UnitResult, error) {
	unit, err := s.source.Unit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return &UnitResult{Fields: unit.Fields()}, nil
}

func (s *appService) RefreshUnits(ctx context.Context) (*RefreshResult, error) {
	units, err := s.source.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{Count: len(units)}, nil
}

func (s *appService) PreviewSheet(ctx context.Context, unitID string, ov *core.Overrides) (*SheetResult, error) {
	computed, err := s.compute(ctx, unitID, ov)
	if err != nil {
		return nil, err
	}

	html, err := s.html.Render(computed)
	if err != nil {
		return nil, err
	}
	return &SheetResult{HTML: html, Context: computed}, nil
}

func (s *appService) DownloadSheet(ctx context.Context, unitID string, ov *core.Overrides) (*DocumentResult, error) {
	computed, err := s.compute(ctx, unitID, ov)
	if err != nil {
		return nil, err
	}

	pdf, err := render.GeneratePDF(computed)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{PDF: pdf, Filename: sheetFilename(computed)}, nil
}

func (s *appService) compute(ctx context.Context, unitID string, ov *core.Overrides) (core.Context, error) {
	unit, err := s.source.Unit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return core.Compute(*unit, ov)
}

// sheetFilename builds the download name from the computed context:
// Rental_Info_<street_address>_<unit_number>.pdf with spaces replaced
// by underscores.
func sheetFilename(c core.Context) string {
	address, _ := c["street_address"].(string)
	if address == "" {
		address = "unit"
	}
	unitNumber, _ := c["unit_number"].(string)

	name := fmt.Sprintf("Rental_Info_%s_%s.pdf", address, unitNumber)
	return strings.ReplaceAll(name, " ", "_")
}
