package data

import (
	"context"
	"errors"
	"strings"

	"rentinfo/internal/core"
)

// ErrUnitNotFound is returned when no unit matches the requested id.
var ErrUnitNotFound = errors.New("unit not found")

// UnitSource supplies unit records to the application. Implementations
// load on first use and re-read only on an explicit Refresh — no
// implicit background refresh.
type UnitSource interface {
	// Units returns every unit known to the source.
	Units(ctx context.Context) ([]core.Unit, error)

	// Unit returns a single unit by id, or ErrUnitNotFound.
	Unit(ctx context.Context, unitID string) (*core.Unit, error)

	// Refresh re-reads the backing data and returns the fresh units.
	Refresh(ctx context.Context) ([]core.Unit, error)
}

// findUnit locates a unit by id, ignoring surrounding whitespace on
// both sides of the comparison.
func findUnit(units []core.Unit, unitID string) (*core.Unit, error) {
	want := strings.TrimSpace(unitID)
	for i := range units {
		if strings.TrimSpace(units[i].UnitID) == want {
			u := units[i]
			return &u, nil
		}
	}
	return nil, ErrUnitNotFound
}
