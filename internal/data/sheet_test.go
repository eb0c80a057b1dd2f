package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

const sheetCSV = "\ufeff" + `Unit ID,Street Address,Unit Number,Base Rent,Security Deposit,Utilities Included,Holding Fee Percent
A-101,315 Pine St,101,"$1,500",1500,Yes,25
B-202,42 Elm Ave,202,975.50,900,No,
`

func TestSheetSource_LoadsOnFirstUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sheetCSV))
	}))
	defer srv.Close()

	source := NewSheetSource(srv.URL)
	units, err := source.Units(context.Background())
	if err != nil {
		t.Fatalf("Units() error = %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("Units() returned %d units, want 2", len(units))
	}

	first := units[0]
	if first.UnitID != "A-101" {
		t.Errorf("UnitID = %q, want A-101", first.UnitID)
	}
	if !first.BaseRent.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("BaseRent = %s, want 1500", first.BaseRent)
	}
	if !first.UtilitiesIncluded {
		t.Error("UtilitiesIncluded = false, want true")
	}

	second := units[1]
	if second.HoldingFeePercent != nil {
		t.Errorf("HoldingFeePercent = %s, want nil for an empty cell", second.HoldingFeePercent)
	}
	if want, _ := decimal.NewFromString("975.50"); !second.BaseRent.Equal(want) {
		t.Errorf("BaseRent = %s, want 975.50", second.BaseRent)
	}
}

func TestSheetSource_UnitLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sheetCSV))
	}))
	defer srv.Close()

	source := NewSheetSource(srv.URL)

	u, err := source.Unit(context.Background(), " A-101 ")
	if err != nil {
		t.Fatalf("Unit() error = %v", err)
	}
	if u.StreetAddress != "315 Pine St" {
		t.Errorf("StreetAddress = %q, want 315 Pine St", u.StreetAddress)
	}

	if _, err := source.Unit(context.Background(), "Z-999"); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("Unit(Z-999) error = %v, want ErrUnitNotFound", err)
	}
}

func TestSheetSource_RefreshReplacesCache(t *testing.T) {
	body := sheetCSV
	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	source := NewSheetSource(srv.URL)
	ctx := context.Background()

	if _, err := source.Units(ctx); err != nil {
		t.Fatalf("Units() error = %v", err)
	}
	if _, err := source.Units(ctx); err != nil {
		t.Fatalf("Units() error = %v", err)
	}
	if fetches != 1 {
		t.Fatalf("Units() fetched %d times, want 1 (cached after first use)", fetches)
	}

	body = "Unit ID,Base Rent\nC-303,800\n"
	units, err := source.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(units) != 1 || units[0].UnitID != "C-303" {
		t.Fatalf("Refresh() = %+v, want the single replacement unit", units)
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetches)
	}

	// The cache now serves the refreshed data.
	units, err = source.Units(ctx)
	if err != nil {
		t.Fatalf("Units() error = %v", err)
	}
	if len(units) != 1 || units[0].UnitID != "C-303" {
		t.Errorf("Units() after refresh = %+v, want the replacement unit", units)
	}
}

func TestSheetSource_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	source := NewSheetSource(srv.URL)
	if _, err := source.Units(context.Background()); err == nil {
		t.Fatal("Units() with a 404 source returned nil error")
	}
}
