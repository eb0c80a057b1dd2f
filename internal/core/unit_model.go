package core

import "github.com/shopspring/decimal"

// Unit is the authoritative snapshot of one rental unit as supplied by
// the data source. Monetary fields are exact decimals; a zero value
// means the source reported 0 or omitted the column.
type Unit struct {
	UnitID        string
	StreetAddress string
	UnitNumber    string

	BaseRent           decimal.Decimal
	WSGMonthly         decimal.Decimal
	SecurityDeposit    decimal.Decimal
	ApplicationFee     decimal.Decimal
	CleaningFee        decimal.Decimal
	ParkingMonthlyCost decimal.Decimal
	WifiMonthlyCost    decimal.Decimal
	PetRentMonthly     decimal.Decimal

	// HoldingFeePercent is nil when the source omitted the value; the
	// engine substitutes the 25% policy default.
	HoldingFeePercent *decimal.Decimal

	WifiDeviceLimit int

	UtilitiesIncluded      bool
	ElectricIncluded       bool
	ParkingOptional        bool
	ParkingAvailable       bool
	WifiOptional           bool
	WifiCancelAnytime      bool
	CatsAllowed            bool
	DogsAllowed            bool
	BreedRestrictionsApply bool

	UtilitiesText string

	// Extra holds descriptive columns the engine does not interpret.
	// They pass through into the computed context verbatim.
	Extra map[string]string
}

// Fields returns the unit as a flat field map, the shape the data source
// originally delivered it in. Derived and formatted entries are added on
// top of this map by Compute.
func (u Unit) Fields() map[string]any {
	fields := make(map[string]any, len(u.Extra)+24)
	for k, v := range u.Extra {
		fields[k] = v
	}

	fields["unit_id"] = u.UnitID
	fields["street_address"] = u.StreetAddress
	fields["unit_number"] = u.UnitNumber

	fields["base_rent"] = u.BaseRent
	fields["wsg_monthly"] = u.WSGMonthly
	fields["security_deposit"] = u.SecurityDeposit
	fields["application_fee"] = u.ApplicationFee
	fields["cleaning_fee"] = u.CleaningFee
	fields["parking_monthly_cost"] = u.ParkingMonthlyCost
	fields["wifi_monthly_cost"] = u.WifiMonthlyCost
	fields["pet_rent_monthly"] = u.PetRentMonthly
	fields["wifi_device_limit"] = u.WifiDeviceLimit

	if u.HoldingFeePercent != nil {
		fields["holding_fee_percent"] = *u.HoldingFeePercent
	}

	fields["utilities_included"] = u.UtilitiesIncluded
	fields["electric_included"] = u.ElectricIncluded
	fields["parking_optional"] = u.ParkingOptional
	fields["parking_available"] = u.ParkingAvailable
	fields["wifi_optional"] = u.WifiOptional
	fields["wifi_cancel_anytime"] = u.WifiCancelAnytime
	fields["cats_allowed"] = u.CatsAllowed
	fields["dogs_allowed"] = u.DogsAllowed
	fields["breed_restrictions_apply"] = u.BreedRestrictionsApply

	fields["utilities_text"] = u.UtilitiesText

	return fields
}

// Overrides is a session-scoped patch over the numeric unit fields.
// Values are raw strings exactly as the request layer delivered them:
// an empty string means "keep the unit value", "0" is a real override,
// and anything that does not parse as a number fails the computation.
// Overrides are never persisted.
type Overrides struct {
	BaseRent           string `json:"base_rent"`
	WSGMonthly         string `json:"wsg_monthly"`
	SecurityDeposit    string `json:"security_deposit"`
	ApplicationFee     string `json:"application_fee"`
	CleaningFee        string `json:"cleaning_fee"`
	HoldingFeePercent  string `json:"holding_fee_percent"`
	ParkingMonthlyCost string `json:"parking_monthly_cost"`
	WifiMonthlyCost    string `json:"wifi_monthly_cost"`
	WifiDeviceLimit    string `json:"wifi_device_limit"`
	PetRentMonthly     string `json:"pet_rent_monthly"`
}

// IsZero reports whether no field is overridden.
func (o *Overrides) IsZero() bool {
	if o == nil {
		return true
	}
	return *o == Overrides{}
}
