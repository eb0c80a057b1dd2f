// Command verify-source loads the configured unit source and prints a
// one-line summary per unit, to sanity-check sheet columns and parsing
// before pointing the server at them.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"rentinfo/internal/core"
	"rentinfo/internal/data"
	"rentinfo/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	source, cleanup, err := buildSource(ctx)
	if err != nil {
		log.Fatalf("unit source: %v", err)
	}
	defer cleanup()

	units, err := source.Units(ctx)
	if err != nil {
		log.Fatalf("load units: %v", err)
	}

	fmt.Printf("loaded %d units\n", len(units))
	for _, u := range units {
		pct := "25% (default)"
		if u.HoldingFeePercent != nil {
			pct = core.FormatPercent(*u.HoldingFeePercent)
		}
		fmt.Printf("  %-12s %s %s  rent=%s deposit=%s holding=%s\n",
			u.UnitID, u.StreetAddress, u.UnitNumber,
			core.FormatUSD(u.BaseRent), core.FormatUSD(u.SecurityDeposit), pct)
	}
}

func buildSource(ctx context.Context) (data.UnitSource, func(), error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		pool, err := db.NewPool(ctx, connStr)
		if err != nil {
			return nil, nil, err
		}
		return data.NewPostgresSource(pool), pool.Close, nil
	}
	if path := os.Getenv("SHEET_FILE"); path != "" {
		return data.NewWorkbookSource(path), func() {}, nil
	}
	if url := os.Getenv("SHEET_URL"); url != "" {
		return data.NewSheetSource(url), func() {}, nil
	}
	return nil, nil, errors.New("no unit source configured: set DATABASE_URL, SHEET_FILE, or SHEET_URL")
}
