package app

import "rentinfo/internal/core"

// UnitSummary identifies one unit in listings.
type UnitSummary struct {
	UnitID        string `json:"unit_id"`
	StreetAddress string `json:"street_address"`
	UnitNumber    string `json:"unit_number"`
}

// UnitListResult is returned by ListUnits.
type UnitListResult struct {
	Units []UnitSummary
}

// UnitResult is returned by GetUnit.
type UnitResult struct {
	Fields map[string]any
}

// RefreshResult is returned by RefreshUnits.
type RefreshResult struct {
	Count int
}

// SheetResult is returned by PreviewSheet.
type SheetResult struct {
	HTML    string
	Context core.Context
}

// DocumentResult is returned by DownloadSheet.
type DocumentResult struct {
	PDF      []byte
	Filename string
}
