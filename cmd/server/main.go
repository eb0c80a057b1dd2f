package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	webAdapter "rentinfo/internal/adapters/web"
	"rentinfo/internal/app"
	"rentinfo/internal/data"
	"rentinfo/internal/db"
	"rentinfo/internal/render"

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

	htmlRenderer, err := render.NewHTMLRenderer()
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	svc := app.NewAppService(source, htmlRenderer)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// buildSource picks the unit source from the environment:
// DATABASE_URL, then SHEET_FILE, then SHEET_URL.
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
