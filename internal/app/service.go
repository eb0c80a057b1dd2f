package app

import (
	"context"

	"rentinfo/internal/core"
)

// ApplicationService is the single interface all adapters call. It
// decouples presentation from the engine and the data source;
// implementations contain no markup and no display logic.
type ApplicationService interface {
	// ListUnits returns the id/address/unit-number summary for every unit.
	ListUnits(ctx context.Context) (*UnitListResult, error)

	// GetUnit returns the full raw field map for one unit.
	GetUnit(ctx context.Context, unitID string) (*UnitResult, error)

	// RefreshUnits re-reads the data source and reports how many units loaded.
	RefreshUnits(ctx context.Context) (*RefreshResult, error)

	// PreviewSheet computes the unit's rental context, applying the
	// optional session overrides, and renders the HTML preview.
	PreviewSheet(ctx context.Context, unitID string, ov *core.Overrides) (*SheetResult, error)

	// DownloadSheet computes the rental context and renders the PDF
	// document plus its download filename.
	DownloadSheet(ctx context.Context, unitID string, ov *core.Overrides) (*DocumentResult, error)
}
