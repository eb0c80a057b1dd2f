package render

import (
	"fmt"

	"rentinfo/internal/core"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	mcore "github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the rental information sheet as PDF bytes using
// maroto/v2. The same context always produces the same document.
func GeneratePDF(c core.Context) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addSheetHeader(m, c)
	addSectionTitle(m, "Move-In Costs")
	addAmountRow(m, "First Month's Rent", str(c, "first_month_rent_fmt"))
	addAmountRow(m, "Last Month's Rent", str(c, "last_month_rent_fmt"))
	addAmountRow(m, "Security Deposit", str(c, "security_deposit_fmt"))
	addAmountRow(m, "Application Fee", str(c, "application_fee_fmt"))
	addAmountRow(m, "Cleaning Fee", str(c, "cleaning_fee_fmt"))
	addTotalRow(m, "Total Move-In Cost", str(c, "total_move_in_fmt"))
	addAmountRow(m, fmt.Sprintf("Holding Fee (%s of rent)", str(c, "holding_pct_fmt")), str(c, "holding_fee_fmt"))
	addTotalRow(m, "Remaining After Holding Fee", str(c, "remaining_fmt"))

	addSectionTitle(m, "Monthly Costs")
	addAmountRow(m, "Base Rent", str(c, "base_rent_fmt"))
	addAmountRow(m, "Utilities", str(c, "utilities_label"))
	addTotalRow(m, "Total Monthly Housing Cost", str(c, "total_monthly_fmt"))

	addSectionTitle(m, "Options & Extras")
	addAmountRow(m, "Water / Sewer / Garbage", str(c, "wsg_monthly_fmt"))
	addAmountRow(m, "Parking (monthly)", str(c, "parking_monthly_cost_fmt"))
	addAmountRow(m, "WiFi (monthly)", str(c, "wifi_monthly_cost_fmt"))
	addAmountRow(m, "WiFi Device Limit", fmt.Sprint(c["wifi_device_limit"]))
	addAmountRow(m, "Pet Rent (monthly)", str(c, "pet_rent_monthly_fmt"))
	addPetPolicy(m, c)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// str reads a string value out of the context; missing or non-string
// entries render as an empty cell rather than failing the document.
func str(c core.Context, key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

func boolVal(c core.Context, key string) bool {
	v, _ := c[key].(bool)
	return v
}

func addSheetHeader(m mcore.Maroto, c core.Context) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Rental Information", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	address := str(c, "street_address")
	if unitNumber := str(c, "unit_number"); unitNumber != "" {
		address += " — Unit " + unitNumber
	}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(address, props.Text{
					Size:  11,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

func addSectionTitle(m mcore.Maroto, title string) {
	titleBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
					Left:  2,
				}),
			).WithStyle(&props.Cell{BackgroundColor: titleBg}),
		),
	)
}

func addAmountRow(m mcore.Maroto, label, value string) {
	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New(label, props.Text{Size: 9, Align: align.Left, Left: 2}),
			),
			col.New(4).Add(
				text.New(value, props.Text{Size: 9, Align: align.Right}),
			),
		),
	)
}

func addTotalRow(m mcore.Maroto, label, value string) {
	totalBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	totalCell := &props.Cell{BackgroundColor: totalBg}
	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New(label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left, Left: 2}),
			).WithStyle(totalCell),
			col.New(4).Add(
				text.New(value, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			).WithStyle(totalCell),
		),
	)
}

func addPetPolicy(m mcore.Maroto, c core.Context) {
	policy := "No pets"
	cats, dogs := boolVal(c, "cats_allowed"), boolVal(c, "dogs_allowed")
	switch {
	case cats && dogs:
		policy = "Cats and dogs allowed"
	case cats:
		policy = "Cats allowed"
	case dogs:
		policy = "Dogs allowed"
	}
	if boolVal(c, "breed_restrictions_apply") {
		policy += " (breed restrictions apply)"
	}
	addAmountRow(m, "Pet Policy", policy)
}
