// Package data supplies unit records to the engine. It owns the one
// boundary layer that turns loosely typed external text (spreadsheet
// cells, override form values) into strict types; the engine only ever
// sees typed units and cleaned numeric strings.
package data

import (
	"fmt"
	"strings"

	"rentinfo/internal/core"

	"github.com/shopspring/decimal"
)

// Money/percentage/count columns. This set is also the override
// whitelist the web adapter accepts.
var numericFields = map[string]struct{}{
	"base_rent":            {},
	"wsg_monthly":          {},
	"security_deposit":     {},
	"application_fee":      {},
	"cleaning_fee":         {},
	"holding_fee_percent":  {},
	"parking_monthly_cost": {},
	"wifi_monthly_cost":    {},
	"wifi_device_limit":    {},
	"pet_rent_monthly":     {},
}

// IsNumericField reports whether name is an overridable numeric column.
func IsNumericField(name string) bool {
	_, ok := numericFields[name]
	return ok
}

// NormalizeHeader lowercases a column header, trims it, and replaces
// spaces with underscores: "Base Rent " -> "base_rent".
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}

// CleanNumeric strips the currency decorations users type into numeric
// values: dollar signs, thousands commas, surrounding whitespace. The
// result is still a string; coercion stays with the engine.
func CleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	return strings.ReplaceAll(s, ",", "")
}

// ParseBool converts a Yes/No cell to a bool. yes/y/true/1 are true,
// case-insensitively; everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

// ParseMoney converts a money or percentage cell to an exact decimal.
// Currency decorations are stripped first; an empty cell is 0.
func ParseMoney(s string) (decimal.Decimal, error) {
	cleaned := CleanNumeric(s)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParseCount converts a count cell to a non-negative int. An empty cell
// is 0; fractional digits are truncated.
func ParseCount(s string) (int, error) {
	d, err := ParseMoney(s)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

// UnitFromRow converts one normalized-header row into a typed unit.
// Unknown columns land in Extra untouched.
func UnitFromRow(row map[string]string) (core.Unit, error) {
	u := core.Unit{Extra: make(map[string]string)}

	for rawKey, rawVal := range row {
		key := NormalizeHeader(rawKey)
		val := strings.TrimSpace(rawVal)

		var err error
		switch key {
		case "unit_id":
			u.UnitID = val
		case "street_address":
			u.StreetAddress = val
		case "unit_number":
			u.UnitNumber = val
		case "utilities_text":
			u.UtilitiesText = val
		case "base_rent":
			u.BaseRent, err = ParseMoney(val)
		case "wsg_monthly":
			u.WSGMonthly, err = ParseMoney(val)
		case "security_deposit":
			u.SecurityDeposit, err = ParseMoney(val)
		case "application_fee":
			u.ApplicationFee, err = ParseMoney(val)
		case "cleaning_fee":
			u.CleaningFee, err = ParseMoney(val)
		case "parking_monthly_cost":
			u.ParkingMonthlyCost, err = ParseMoney(val)
		case "wifi_monthly_cost":
			u.WifiMonthlyCost, err = ParseMoney(val)
		case "pet_rent_monthly":
			u.PetRentMonthly, err = ParseMoney(val)
		case "holding_fee_percent":
			// An empty cell means "absent": the engine applies the 25% default.
			if val != "" {
				var d decimal.Decimal
				if d, err = ParseMoney(val); err == nil {
					u.HoldingFeePercent = &d
				}
			}
		case "wifi_device_limit":
			u.WifiDeviceLimit, err = ParseCount(val)
		case "utilities_included":
			u.UtilitiesIncluded = ParseBool(val)
		case "electric_included":
			u.ElectricIncluded = ParseBool(val)
		case "parking_optional":
			u.ParkingOptional = ParseBool(val)
		case "parking_available":
			u.ParkingAvailable = ParseBool(val)
		case "wifi_optional":
			u.WifiOptional = ParseBool(val)
		case "wifi_cancel_anytime":
			u.WifiCancelAnytime = ParseBool(val)
		case "cats_allowed":
			u.CatsAllowed = ParseBool(val)
		case "dogs_allowed":
			u.DogsAllowed = ParseBool(val)
		case "breed_restrictions_apply":
			u.BreedRestrictionsApply = ParseBool(val)
		default:
			u.Extra[key] = val
		}
		if err != nil {
			return core.Unit{}, fmt.Errorf("column %s: %w", key, err)
		}
	}

	return u, nil
}

// unitsFromRows converts a header row plus data rows into units. Rows
// shorter than the header (ragged spreadsheet exports) are padded with
// empty cells.
func unitsFromRows(headers []string, rows [][]string) ([]core.Unit, error) {
	units := make([]core.Unit, 0, len(rows))
	for i, row := range rows {
		m := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(row) {
				m[h] = row[j]
			} else {
				m[h] = ""
			}
		}
		u, err := UnitFromRow(m)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		units = append(units, u)
	}
	return units, nil
}
