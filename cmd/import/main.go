// Command import loads a wardrobe file (JSON or YAML) into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import --file data/wardrobe.yaml --db data/wardrobe.db
//
// This tool:
// 1. Parses the wardrobe file
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Imports all items in a single transaction
//
// Every item gets a fresh id, so running it twice imports the items twice.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/lunar-calendar-api/internal/database"
)

// ImportFile is the layout of a wardrobe file.
type ImportFile struct {
	Metadata struct {
		Source      string `json:"source" yaml:"source"`
		GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	} `json:"metadata" yaml:"metadata"`
	Clothes []ImportItem `json:"clothes" yaml:"clothes"`
}

// ImportItem is one clothing item in a wardrobe file.
type ImportItem struct {
	Label        string  `json:"label" yaml:"label"`
	Type         string  `json:"clothing_type" yaml:"clothing_type"`
	Season       string  `json:"season" yaml:"season"`
	WearCount    *int    `json:"wear_count" yaml:"wear_count"`
	PurchaseDate string  `json:"purchase_date" yaml:"purchase_date"` // YYYY-MM-DD, optional
	ImageURL     *string `json:"image_url" yaml:"image_url"`
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Items    int
	Wears    int
	BySeason map[database.Season]int
}

func main() {
	cmd := &cli.Command{
		Name:   "import",
		Usage:  "Import a wardrobe file into the SQLite database",
		Action: action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to the wardrobe file (.json, .yaml or .yml)",
				Value: "data/wardrobe.yaml",
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "Path to SQLite database",
				Value:   "data/wardrobe.db",
				Sources: cli.EnvVars("DATABASE_PATH"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose output",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	// Setup logger
	logLevel := slog.LevelInfo
	if cmd.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(ctx, cmd.String("file"), cmd.String("db"), logger, os.Stdout); err != nil {
		return err
	}

	logger.Info("import complete")
	return nil
}

func run(ctx context.Context, filePath, dbPath string, logger *slog.Logger, out io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse the wardrobe file
	// =========================================================================
	logger.Info("reading wardrobe file", slog.String("path", filePath))

	importData, err := readImportFile(filePath)
	if err != nil {
		return err
	}

	items, err := toNewClothes(importData.Clothes)
	if err != nil {
		return err
	}

	logger.Info("parsed wardrobe file",
		slog.Int("items", len(items)),
		slog.String("source", importData.Metadata.Source),
		slog.String("generated_at", importData.Metadata.GeneratedAt),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	stats := ImportStats{BySeason: make(map[database.Season]int)}
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importClothes(ctx, tx, items, logger, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	wardrobe, err := db.WardrobeStats(ctx)
	if err != nil {
		return fmt.Errorf("wardrobe stats: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("total_items", wardrobe.Total),
		slog.Int("total_wears", wardrobe.TotalWears),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Import Summary ===")
	fmt.Fprintf(out, "Items imported:      %d\n", stats.Items)
	fmt.Fprintf(out, "Wears imported:      %d\n", stats.Wears)
	for _, season := range database.ValidSeasons() {
		fmt.Fprintf(out, "  %-18s %d\n", season+":", stats.BySeason[season])
	}
	fmt.Fprintf(out, "Wardrobe total:      %d\n", wardrobe.Total)
	fmt.Fprintf(out, "Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// readImportFile parses path as YAML or JSON depending on its extension.
func readImportFile(path string) (*ImportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wardrobe file: %w", err)
	}

	var f ImportFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	case ".json":
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported wardrobe file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse wardrobe file: %w", err)
	}

	return &f, nil
}

// toNewClothes checks every item before anything is written.
func toNewClothes(items []ImportItem) ([]database.NewClothing, error) {
	out := make([]database.NewClothing, 0, len(items))

	for i, item := range items {
		nc := database.NewClothing{
			Label:     strings.TrimSpace(item.Label),
			Type:      database.ClothingType(item.Type),
			Season:    database.Season(item.Season),
			WearCount: item.WearCount,
			ImageURL:  item.ImageURL,
		}

		switch {
		case nc.Label == "":
			return nil, fmt.Errorf("item %d: label is required", i+1)
		case !nc.Type.IsValid():
			return nil, fmt.Errorf("item %d (%s): invalid clothing_type %q", i+1, nc.Label, item.Type)
		case !nc.Season.IsValid():
			return nil, fmt.Errorf("item %d (%s): invalid season %q", i+1, nc.Label, item.Season)
		case nc.WearCount != nil && *nc.WearCount < 0:
			return nil, fmt.Errorf("item %d (%s): wear_count must not be negative", i+1, nc.Label)
		}

		if item.PurchaseDate != "" {
			t, err := time.Parse(time.DateOnly, item.PurchaseDate)
			if err != nil {
				return nil, fmt.Errorf("item %d (%s): invalid purchase_date %q", i+1, nc.Label, item.PurchaseDate)
			}
			nc.PurchaseDate = &t
		}

		out = append(out, nc)
	}

	return out, nil
}

// importClothes inserts all items.
func importClothes(ctx context.Context, tx *database.Tx, items []database.NewClothing, logger *slog.Logger, stats *ImportStats) error {
	for i, nc := range items {
		c, err := tx.CreateClothing(ctx, nc)
		if err != nil {
			return fmt.Errorf("create item %d (%s): %w", i+1, nc.Label, err)
		}

		stats.Items++
		stats.Wears += c.WearCount
		stats.BySeason[c.Season]++

		logger.Debug("imported clothing",
			slog.String("id", c.ID),
			slog.String("label", c.Label),
		)
	}

	return nil
}
