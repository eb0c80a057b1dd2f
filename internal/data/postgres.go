package data

import (
	"context"
	"fmt"

	"rentinfo/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresSource reads units from the units table. The table columns
// use the same normalized field vocabulary as the sheet headers. No
// caching: the pool is the source of truth and Refresh is a re-query.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source backed by the given pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const selectUnits = `
SELECT unit_id,
       COALESCE(street_address, ''),
       COALESCE(unit_number, ''),
       COALESCE(base_rent, 0),
       COALESCE(wsg_monthly, 0),
       COALESCE(security_deposit, 0),
       COALESCE(application_fee, 0),
       COALESCE(cleaning_fee, 0),
       COALESCE(parking_monthly_cost, 0),
       COALESCE(wifi_monthly_cost, 0),
       COALESCE(pet_rent_monthly, 0),
       holding_fee_percent,
       COALESCE(wifi_device_limit, 0),
       COALESCE(utilities_included, false),
       COALESCE(electric_included, false),
       COALESCE(parking_optional, false),
       COALESCE(parking_available, false),
       COALESCE(wifi_optional, false),
       COALESCE(wifi_cancel_anytime, false),
       COALESCE(cats_allowed, false),
       COALESCE(dogs_allowed, false),
       COALESCE(breed_restrictions_apply, false),
       COALESCE(utilities_text, '')
FROM units
ORDER BY unit_id`

func (s *PostgresSource) Units(ctx context.Context) ([]core.Unit, error) {
	rows, err := s.pool.Query(ctx, selectUnits)
	if err != nil {
		return nil, fmt.Errorf("postgres source: query units: %w", err)
	}
	defer rows.Close()

	var units []core.Unit
	for rows.Next() {
		var u core.Unit
		var holdingPct decimal.NullDecimal
		if err := rows.Scan(
			&u.UnitID, &u.StreetAddress, &u.UnitNumber,
			&u.BaseRent, &u.WSGMonthly, &u.SecurityDeposit,
			&u.ApplicationFee, &u.CleaningFee,
			&u.ParkingMonthlyCost, &u.WifiMonthlyCost, &u.PetRentMonthly,
			&holdingPct, &u.WifiDeviceLimit,
			&u.UtilitiesIncluded, &u.ElectricIncluded,
			&u.ParkingOptional, &u.ParkingAvailable,
			&u.WifiOptional, &u.WifiCancelAnytime,
			&u.CatsAllowed, &u.DogsAllowed, &u.BreedRestrictionsApply,
			&u.UtilitiesText,
		); err != nil {
			return nil, fmt.Errorf("postgres source: scan unit: %w", err)
		}
		if holdingPct.Valid {
			pct := holdingPct.Decimal
			u.HoldingFeePercent = &pct
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres source: iterate units: %w", err)
	}
	return units, nil
}

func (s *PostgresSource) Unit(ctx context.Context, unitID string) (*core.Unit, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	return findUnit(units, unitID)
}

func (s *PostgresSource) Refresh(ctx context.Context) ([]core.Unit, error) {
	return s.Units(ctx)
}
