package core_test

import (
	"errors"
	"testing"

	"rentinfo/internal/core"

	"github.com/shopspring/decimal"
)

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amtPtr(s string) *decimal.Decimal {
	d := amt(s)
	return &d
}

func ctxAmount(t *testing.T, ctx core.Context, key string) decimal.Decimal {
	t.Helper()
	v, ok := ctx[key]
	if !ok {
		t.Fatalf("context is missing %q", key)
	}
	d, ok := v.(decimal.Decimal)
	if !ok {
		t.Fatalf("context[%q] = %T, want decimal.Decimal", key, v)
	}
	return d
}

func ctxString(t *testing.T, ctx core.Context, key string) string {
	t.Helper()
	v, ok := ctx[key]
	if !ok {
		t.Fatalf("context is missing %q", key)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("context[%q] = %T, want string", key, v)
	}
	return s
}

func TestCompute_EndToEnd(t *testing.T) {
	unit := core.Unit{
		UnitID:            "A-101",
		StreetAddress:     "315 Pine St",
		UnitNumber:        "101",
		BaseRent:          amt("1500"),
		SecurityDeposit:   amt("1500"),
		ApplicationFee:    amt("50"),
		CleaningFee:       amt("100"),
		HoldingFeePercent: amtPtr("25"),
	}

	ctx, err := core.Compute(unit, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := map[string]string{
		"base_rent_fmt":        "$1,500",
		"first_month_rent_fmt": "$1,500",
		"last_month_rent_fmt":  "$1,500",
		"holding_fee_fmt":      "$375",
		"total_move_in_fmt":    "$4,650",
		"remaining_fmt":        "$4,275",
		"total_monthly_fmt":    "$1,500",
		"holding_pct_fmt":      "25%",
	}
	for key, wantVal := range want {
		if got := ctxString(t, ctx, key); got != wantVal {
			t.Errorf("context[%q] = %q, want %q", key, got, wantVal)
		}
	}

	if got := ctxAmount(t, ctx, "total_move_in"); !got.Equal(amt("4650")) {
		t.Errorf("total_move_in = %s, want 4650", got)
	}
	if got := ctxAmount(t, ctx, "remaining_after_hold"); !got.Equal(amt("4275")) {
		t.Errorf("remaining_after_hold = %s, want 4275", got)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	unit := core.Unit{
		BaseRent:        amt("1234.56"),
		SecurityDeposit: amt("987.65"),
		ApplicationFee:  amt("45.50"),
		CleaningFee:     amt("150"),
	}
	ov := &core.Overrides{HoldingFeePercent: "33"}

	first, err := core.Compute(unit, ov)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	second, err := core.Compute(unit, ov)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	for key, v := range first {
		switch fv := v.(type) {
		case string:
			if sv := second[key].(string); sv != fv {
				t.Errorf("context[%q] differs across calls: %q vs %q", key, fv, sv)
			}
		case decimal.Decimal:
			if sv := second[key].(decimal.Decimal); !sv.Equal(fv) {
				t.Errorf("context[%q] differs across calls: %s vs %s", key, fv, sv)
			}
		}
	}
}

func TestCompute_OverridePrecedence(t *testing.T) {
	unit := core.Unit{BaseRent: amt("1500"), SecurityDeposit: amt("1500")}

	tests := []struct {
		name     string
		ov       *core.Overrides
		wantRent string
	}{
		{"nil overrides keep unit values", nil, "1500"},
		{"empty overrides keep unit values", &core.Overrides{}, "1500"},
		{"empty string is not an override", &core.Overrides{BaseRent: ""}, "1500"},
		{"non-empty value wins", &core.Overrides{BaseRent: "1725.50"}, "1725.5"},
		{"zero is a real override", &core.Overrides{BaseRent: "0"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := core.Compute(unit, tt.ov)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got := ctxAmount(t, ctx, "base_rent"); !got.Equal(amt(tt.wantRent)) {
				t.Errorf("base_rent = %s, want %s", got, tt.wantRent)
			}
			// Security deposit is never touched by these overrides.
			if got := ctxAmount(t, ctx, "security_deposit"); !got.Equal(amt("1500")) {
				t.Errorf("security_deposit = %s, want 1500", got)
			}
		})
	}
}

func TestCompute_HoldingFeeRounding(t *testing.T) {
	tests := []struct {
		name     string
		baseRent string
		pct      string
		wantFee  string
		wantFmt  string
	}{
		{"quarter of even rent", "1000.00", "25", "250", "$250"},
		{"half-up at the third place", "999.99", "33", "330", "$330"},
		{"fractional percent", "1000", "2.5", "25", "$25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := core.Unit{
				BaseRent:          amt(tt.baseRent),
				HoldingFeePercent: amtPtr(tt.pct),
			}
			ctx, err := core.Compute(unit, nil)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got := ctxAmount(t, ctx, "holding_fee"); !got.Equal(amt(tt.wantFee)) {
				t.Errorf("holding_fee = %s, want %s", got, tt.wantFee)
			}
			if got := ctxString(t, ctx, "holding_fee_fmt"); got != tt.wantFmt {
				t.Errorf("holding_fee_fmt = %q, want %q", got, tt.wantFmt)
			}
		})
	}
}

func TestCompute_HoldingPercentDefaults(t *testing.T) {
	ctx, err := core.Compute(core.Unit{BaseRent: amt("1000")}, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := ctxString(t, ctx, "holding_pct_fmt"); got != "25%" {
		t.Errorf("holding_pct_fmt = %q, want 25%%", got)
	}
	if got := ctxAmount(t, ctx, "holding_fee"); !got.Equal(amt("250")) {
		t.Errorf("holding_fee = %s, want 250", got)
	}

	// An explicit zero percent is not "absent".
	ctx, err = core.Compute(core.Unit{BaseRent: amt("1000"), HoldingFeePercent: amtPtr("0")}, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := ctxAmount(t, ctx, "holding_fee"); !got.Equal(amt("0")) {
		t.Errorf("holding_fee = %s, want 0", got)
	}
}

func TestCompute_MoveInIdentity(t *testing.T) {
	// Values chosen to drift under float64 accumulation.
	unit := core.Unit{
		BaseRent:          amt("1234.56"),
		SecurityDeposit:   amt("0.01"),
		ApplicationFee:    amt("0.02"),
		CleaningFee:       amt("0.03"),
		HoldingFeePercent: amtPtr("33"),
	}

	ctx, err := core.Compute(unit, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	first := ctxAmount(t, ctx, "first_month_rent")
	last := ctxAmount(t, ctx, "last_month_rent")
	total := ctxAmount(t, ctx, "total_move_in")
	holding := ctxAmount(t, ctx, "holding_fee")
	remaining := ctxAmount(t, ctx, "remaining_after_hold")

	wantTotal := first.Add(last).Add(amt("0.01")).Add(amt("0.02")).Add(amt("0.03"))
	if !total.Equal(wantTotal) {
		t.Errorf("total_move_in = %s, want %s", total, wantTotal)
	}
	if !remaining.Equal(total.Sub(holding)) {
		t.Errorf("remaining_after_hold = %s, want %s", remaining, total.Sub(holding))
	}
}

func TestCompute_UtilitiesLabel(t *testing.T) {
	tests := []struct {
		name string
		unit core.Unit
		want string
	}{
		{"included", core.Unit{UtilitiesIncluded: true}, "Included in Rent"},
		{"included beats text", core.Unit{UtilitiesIncluded: true, UtilitiesText: "Tenant pays electric"}, "Included in Rent"},
		{"text fallback", core.Unit{UtilitiesText: "Tenant pays electric"}, "Tenant pays electric"},
		{"neither", core.Unit{}, "Not Included"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := core.Compute(tt.unit, nil)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got := ctxString(t, ctx, "utilities_label"); got != tt.want {
				t.Errorf("utilities_label = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompute_InvalidOverride(t *testing.T) {
	unit := core.Unit{BaseRent: amt("1500")}

	_, err := core.Compute(unit, &core.Overrides{BaseRent: "abc"})
	if err == nil {
		t.Fatal("Compute() with non-numeric override returned nil error")
	}

	var cerr *core.CoercionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v (%T), want *core.CoercionError", err, err)
	}
	if cerr.Field != "base_rent" {
		t.Errorf("CoercionError.Field = %q, want base_rent", cerr.Field)
	}
	if cerr.Value != "abc" {
		t.Errorf("CoercionError.Value = %q, want abc", cerr.Value)
	}
}

func TestCompute_ExtraFieldsPassThrough(t *testing.T) {
	unit := core.Unit{
		BaseRent: amt("900"),
		Extra:    map[string]string{"neighborhood": "Ballard", "laundry": "In unit"},
	}

	ctx, err := core.Compute(unit, nil)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := ctxString(t, ctx, "neighborhood"); got != "Ballard" {
		t.Errorf("neighborhood = %q, want Ballard", got)
	}
	if got := ctxString(t, ctx, "laundry"); got != "In unit" {
		t.Errorf("laundry = %q, want In unit", got)
	}
}

func TestCompute_EmptyUnit(t *testing.T) {
	// A unit found but barely populated must compute with defaults, not fail.
	ctx, err := core.Compute(core.Unit{UnitID: "X"}, nil)
	if err != nil {
		t.Fatalf("Compute() on empty unit error = %v", err)
	}
	if got := ctxString(t, ctx, "total_move_in_fmt"); got != "$0" {
		t.Errorf("total_move_in_fmt = %q, want $0", got)
	}
	if got := ctxString(t, ctx, "utilities_label"); got != "Not Included" {
		t.Errorf("utilities_label = %q, want Not Included", got)
	}
}

func TestCompute_PassThroughFormatting(t *testing.T) {
	unit := core.Unit{
		ParkingMonthlyCost: amt("75"),
		WifiMonthlyCost:    amt("49.99"),
		PetRentMonthly:     amt("35"),
		WifiDeviceLimit:    4,
	}

	ctx, err := core.Compute(unit, &core.Overrides{WifiDeviceLimit: "6"})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := ctxString(t, ctx, "parking_monthly_cost_fmt"); got != "$75" {
		t.Errorf("parking_monthly_cost_fmt = %q, want $75", got)
	}
	if got := ctxString(t, ctx, "wifi_monthly_cost_fmt"); got != "$49.99" {
		t.Errorf("wifi_monthly_cost_fmt = %q, want $49.99", got)
	}
	if got := ctxString(t, ctx, "pet_rent_monthly_fmt"); got != "$35" {
		t.Errorf("pet_rent_monthly_fmt = %q, want $35", got)
	}
	if got, ok := ctx["wifi_device_limit"].(int); !ok || got != 6 {
		t.Errorf("wifi_device_limit = %v, want 6", ctx["wifi_device_limit"])
	}
}
