// Package core is the deterministic computation engine for rental
// information sheets. It merges session overrides into a unit snapshot,
// derives the move-in financials, and formats every monetary field.
//
// All arithmetic uses shopspring decimals; binary floats never enter
// the money path. Every function is pure: no I/O, no shared state, and
// repeated calls with equal inputs produce byte-identical output.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	defaultHoldingPct = decimal.NewFromInt(25)
	oneHundred        = decimal.NewFromInt(100)
)

// Context is the flat computed output handed to renderers: every merged
// unit field, a "<field>_fmt" string per monetary field, and the derived
// move-in totals.
type Context map[string]any

// Compute merges ov into unit (non-empty override values win), derives
// the move-in financials, and assembles the rendering context.
//
// The only failure mode is a CoercionError for an override value that
// does not parse as a number; a minimally populated unit never fails.
func Compute(unit Unit, ov *Overrides) (Context, error) {
	if err := applyOverrides(&unit, ov); err != nil {
		return nil, err
	}

	holdingPct := defaultHoldingPct
	if unit.HoldingFeePercent != nil {
		holdingPct = *unit.HoldingFeePercent
	}

	// Fixed business policy: first and last month both equal base rent,
	// the holding fee is a percentage of base rent rounded half-up to
	// cents, and utilities are assumed included in the monthly total.
	firstMonth := unit.BaseRent
	lastMonth := unit.BaseRent
	holdingFee := unit.BaseRent.Mul(holdingPct).Div(oneHundred).Round(2)
	totalMoveIn := firstMonth.Add(lastMonth).
		Add(unit.SecurityDeposit).
		Add(unit.ApplicationFee).
		Add(unit.CleaningFee)
	remaining := totalMoveIn.Sub(holdingFee)
	totalMonthly := unit.BaseRent

	ctx := Context(unit.Fields())

	ctx["base_rent_fmt"] = FormatUSD(unit.BaseRent)
	ctx["first_month_rent_fmt"] = FormatUSD(firstMonth)
	ctx["last_month_rent_fmt"] = FormatUSD(lastMonth)
	ctx["security_deposit_fmt"] = FormatUSD(unit.SecurityDeposit)
	ctx["application_fee_fmt"] = FormatUSD(unit.ApplicationFee)
	ctx["cleaning_fee_fmt"] = FormatUSD(unit.CleaningFee)
	ctx["holding_fee_fmt"] = FormatUSD(holdingFee)
	ctx["total_move_in_fmt"] = FormatUSD(totalMoveIn)
	ctx["remaining_fmt"] = FormatUSD(remaining)
	ctx["total_monthly_fmt"] = FormatUSD(totalMonthly)
	ctx["holding_pct_fmt"] = FormatPercent(holdingPct)

	ctx["first_month_rent"] = firstMonth
	ctx["last_month_rent"] = lastMonth
	ctx["holding_fee"] = holdingFee
	ctx["holding_fee_percent"] = holdingPct
	ctx["total_move_in"] = totalMoveIn
	ctx["remaining_after_hold"] = remaining
	ctx["total_monthly"] = totalMonthly

	ctx["utilities_label"] = utilitiesLabel(unit)

	ctx["wsg_monthly_fmt"] = FormatUSD(unit.WSGMonthly)
	ctx["parking_monthly_cost_fmt"] = FormatUSD(unit.ParkingMonthlyCost)
	ctx["wifi_monthly_cost_fmt"] = FormatUSD(unit.WifiMonthlyCost)
	ctx["pet_rent_monthly_fmt"] = FormatUSD(unit.PetRentMonthly)
	ctx["wifi_device_limit"] = unit.WifiDeviceLimit

	return ctx, nil
}

// applyOverrides coerces each non-empty override value and writes it
// over the corresponding unit field. Empty strings leave the unit value
// untouched; "0" is a real override.
func applyOverrides(u *Unit, ov *Overrides) error {
	if ov.IsZero() {
		return nil
	}

	money := []struct {
		dst   *decimal.Decimal
		field string
		raw   string
	}{
		{&u.BaseRent, "base_rent", ov.BaseRent},
		{&u.WSGMonthly, "wsg_monthly", ov.WSGMonthly},
		{&u.SecurityDeposit, "security_deposit", ov.SecurityDeposit},
		{&u.ApplicationFee, "application_fee", ov.ApplicationFee},
		{&u.CleaningFee, "cleaning_fee", ov.CleaningFee},
		{&u.ParkingMonthlyCost, "parking_monthly_cost", ov.ParkingMonthlyCost},
		{&u.WifiMonthlyCost, "wifi_monthly_cost", ov.WifiMonthlyCost},
		{&u.PetRentMonthly, "pet_rent_monthly", ov.PetRentMonthly},
	}
	for _, m := range money {
		if m.raw == "" {
			continue
		}
		d, err := coerce(m.field, m.raw)
		if err != nil {
			return err
		}
		*m.dst = d
	}

	if ov.HoldingFeePercent != "" {
		d, err := coerce("holding_fee_percent", ov.HoldingFeePercent)
		if err != nil {
			return err
		}
		u.HoldingFeePercent = &d
	}

	if ov.WifiDeviceLimit != "" {
		d, err := coerce("wifi_device_limit", ov.WifiDeviceLimit)
		if err != nil {
			return err
		}
		u.WifiDeviceLimit = int(d.IntPart())
	}

	return nil
}

// coerce parses raw into an exact decimal or fails with a CoercionError.
func coerce(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, &CoercionError{Field: field, Value: raw, Err: err}
	}
	return d, nil
}

func utilitiesLabel(u Unit) string {
	if u.UtilitiesIncluded {
		return "Included in Rent"
	}
	if u.UtilitiesText != "" {
		return u.UtilitiesText
	}
	return "Not Included"
}
