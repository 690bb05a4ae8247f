package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zapponejosh/lunar-calendar-api/internal/database"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const wardrobeYAML = `
metadata:
  source: spring cleanup
  generated_at: "2024-03-01"
clothes:
  - label: Linen shirt
    clothing_type: top
    season: summer
    wear_count: 4
    purchase_date: "2023-06-01"
  - label: Down jacket
    clothing_type: outerwear
    season: winter
    image_url: https://example.com/jacket.png
  - label: Chinos
    clothing_type: bottom
    season: spring-autumn
    wear_count: 2
`

func TestRun_YAML(t *testing.T) {
	ctx := context.Background()
	filePath := writeFile(t, "wardrobe.yaml", wardrobeYAML)
	dbPath := filepath.Join(t.TempDir(), "wardrobe.db")

	var out bytes.Buffer
	if err := run(ctx, filePath, dbPath, quietLogger(), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Items imported:      3") {
		t.Errorf("summary:\n%s", out.String())
	}

	db, err := database.Open(database.DefaultConfig(dbPath), quietLogger())
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close()

	stats, err := db.WardrobeStats(ctx)
	if err != nil {
		t.Fatalf("WardrobeStats() error = %v", err)
	}
	if stats.Total != 3 || stats.TotalWears != 6 {
		t.Errorf("stats = %+v, want 3 items and 6 wears", stats)
	}

	summer, err := db.ListClothesBySeason(ctx, database.SeasonSummer)
	if err != nil {
		t.Fatalf("ListClothesBySeason() error = %v", err)
	}
	if len(summer) != 1 {
		t.Fatalf("len(summer) = %d, want 1", len(summer))
	}
	want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	if !summer[0].PurchaseDate.Equal(want) {
		t.Errorf("purchase_date = %v, want %v", summer[0].PurchaseDate, want)
	}
}

func TestRun_JSON(t *testing.T) {
	filePath := writeFile(t, "wardrobe.json", `{"clothes":[{"label":"Sundress","clothing_type":"dress","season":"summer"}]}`)
	dbPath := filepath.Join(t.TempDir(), "wardrobe.db")

	var out bytes.Buffer
	if err := run(context.Background(), filePath, dbPath, quietLogger(), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Items imported:      1") {
		t.Errorf("summary:\n%s", out.String())
	}
}

func TestRun_InvalidItemsImportNothing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing label", "clothes:\n  - clothing_type: top\n    season: summer\n", "label is required"},
		{"bad type", "clothes:\n  - label: Hat\n    clothing_type: hat\n    season: summer\n", "invalid clothing_type"},
		{"bad season", "clothes:\n  - label: Shirt\n    clothing_type: top\n    season: monsoon\n", "invalid season"},
		{"negative wears", "clothes:\n  - label: Shirt\n    clothing_type: top\n    season: summer\n    wear_count: -2\n", "wear_count"},
		{"bad date", "clothes:\n  - label: Shirt\n    clothing_type: top\n    season: summer\n    purchase_date: 06/01/2023\n", "purchase_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := writeFile(t, "wardrobe.yml", tt.content)
			dbPath := filepath.Join(t.TempDir(), "wardrobe.db")

			err := run(context.Background(), filePath, dbPath, quietLogger(), io.Discard)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("run() error = %v, want mention of %q", err, tt.wantErr)
			}
			if _, statErr := os.Stat(dbPath); !os.IsNotExist(statErr) {
				t.Errorf("database created despite invalid input")
			}
		})
	}
}

func TestReadImportFile_Errors(t *testing.T) {
	if _, err := readImportFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := readImportFile(writeFile(t, "wardrobe.csv", "label\n")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := readImportFile(writeFile(t, "wardrobe.json", "{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
