package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	// RFC3339, with or without fractional seconds
	t, err := time.Parse(time.RFC3339, ns.String)
	if err == nil {
		return &t
	}

	// SQLite datetime('now') format
	t, err = time.Parse("2006-01-02 15:04:05", ns.String)
	if err == nil {
		return &t
	}

	return nil
}

// currentTime returns now at the precision timestampLayout stores.
func currentTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

const clothingColumns = `
	id, label, clothing_type, season, wear_count,
	purchase_date, image_url, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClothing(row rowScanner) (*Clothing, error) {
	var c Clothing
	var imageURL, purchaseStr, createdStr, updatedStr sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Label,
		&c.Type,
		&c.Season,
		&c.WearCount,
		&purchaseStr,
		&imageURL,
		&createdStr,
		&updatedStr,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	if t := parseTimestamp(purchaseStr); t != nil {
		c.PurchaseDate = *t
	}
	if t := parseTimestamp(createdStr); t != nil {
		c.CreatedAt = *t
	}
	if t := parseTimestamp(updatedStr); t != nil {
		c.UpdatedAt = *t
	}

	return &c, nil
}

// =============================================================================
// Clothing Queries
// =============================================================================

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateClothing inserts a new clothing item with a fresh UUID.
func (db *DB) CreateClothing(ctx context.Context, nc NewClothing) (*Clothing, error) {
	c, err := insertClothing(ctx, db, nc)
	if err != nil {
		return nil, err
	}

	db.logger.Debug("clothing created",
		"id", c.ID,
		"type", c.Type,
		"season", c.Season,
	)

	return c, nil
}

// CreateClothing inserts a new clothing item inside the transaction.
func (tx *Tx) CreateClothing(ctx context.Context, nc NewClothing) (*Clothing, error) {
	return insertClothing(ctx, tx, nc)
}

func insertClothing(ctx context.Context, ex execer, nc NewClothing) (*Clothing, error) {
	now := currentTime()

	c := &Clothing{
		ID:           uuid.NewString(),
		Label:        nc.Label,
		Type:         nc.Type,
		Season:       nc.Season,
		PurchaseDate: now,
		ImageURL:     nc.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if nc.WearCount != nil {
		c.WearCount = *nc.WearCount
	}
	if nc.PurchaseDate != nil {
		c.PurchaseDate = nc.PurchaseDate.UTC().Truncate(time.Microsecond)
	}

	query := `
		INSERT INTO clothes (
			id, label, clothing_type, season, wear_count,
			purchase_date, image_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := ex.ExecContext(ctx, query,
		c.ID,
		c.Label,
		c.Type,
		c.Season,
		c.WearCount,
		formatTimestamp(c.PurchaseDate),
		nullString(c.ImageURL),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert clothing: %w", err)
	}

	return c, nil
}

// GetClothing retrieves a clothing item by id.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) GetClothing(ctx context.Context, id string) (*Clothing, error) {
	query := `SELECT ` + clothingColumns + ` FROM clothes WHERE id = ?`

	c, err := scanClothing(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query clothing: %w", err)
	}
	return c, nil
}

// ListClothes returns every clothing item, oldest first.
func (db *DB) ListClothes(ctx context.Context) ([]Clothing, error) {
	return db.listClothes(ctx, "")
}

// ListClothesBySeason returns the clothing items for one season.
func (db *DB) ListClothesBySeason(ctx context.Context, season Season) ([]Clothing, error) {
	return db.listClothes(ctx, "WHERE season = ?", season)
}

// ListClothesByType returns the clothing items of one type.
func (db *DB) ListClothesByType(ctx context.Context, ct ClothingType) ([]Clothing, error) {
	return db.listClothes(ctx, "WHERE clothing_type = ?", ct)
}

func (db *DB) listClothes(ctx context.Context, where string, args ...any) ([]Clothing, error) {
	query := `SELECT ` + clothingColumns + ` FROM clothes ` + where + ` ORDER BY created_at ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clothes: %w", err)
	}
	defer rows.Close()

	clothes := []Clothing{}
	for rows.Next() {
		c, err := scanClothing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clothing: %w", err)
		}
		clothes = append(clothes, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clothes: %w", err)
	}

	return clothes, nil
}

// UpdateClothing applies a partial update and returns the updated item.
// Returns ErrNotFound if the item doesn't exist.
func (db *DB) UpdateClothing(ctx context.Context, id string, upd ClothingUpdate) (*Clothing, error) {
	var updated *Clothing

	err := db.WithTx(ctx, func(tx *Tx) error {
		query := `SELECT ` + clothingColumns + ` FROM clothes WHERE id = ?`
		c, err := scanClothing(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("query clothing: %w", err)
		}

		if upd.Label != nil {
			c.Label = *upd.Label
		}
		if upd.Type != nil {
			c.Type = *upd.Type
		}
		if upd.Season != nil {
			c.Season = *upd.Season
		}
		if upd.WearCount != nil {
			c.WearCount = *upd.WearCount
		}
		if upd.ImageURL != nil {
			c.ImageURL = upd.ImageURL
		}
		c.UpdatedAt = currentTime()

		_, err = tx.ExecContext(ctx, `
			UPDATE clothes
			SET label = ?, clothing_type = ?, season = ?, wear_count = ?,
				image_url = ?, updated_at = ?
			WHERE id = ?
		`,
			c.Label,
			c.Type,
			c.Season,
			c.WearCount,
			nullString(c.ImageURL),
			formatTimestamp(c.UpdatedAt),
			c.ID,
		)
		if err != nil {
			return fmt.Errorf("update clothing: %w", err)
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteClothing removes a clothing item.
// Returns ErrNotFound if it doesn't exist.
func (db *DB) DeleteClothing(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM clothes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete clothing: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// =============================================================================
// Stats
// =============================================================================

// WardrobeStats counts items per season and type and sums the wear counts.
// Every valid season and type is present in the maps, with zero when unused.
func (db *DB) WardrobeStats(ctx context.Context) (*WardrobeStats, error) {
	stats := &WardrobeStats{
		BySeason: make(map[Season]int),
		ByType:   make(map[ClothingType]int),
	}
	for _, s := range ValidSeasons() {
		stats.BySeason[s] = 0
	}
	for _, ct := range ValidClothingTypes() {
		stats.ByType[ct] = 0
	}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(wear_count), 0) FROM clothes`,
	).Scan(&stats.Total, &stats.TotalWears)
	if err != nil {
		return nil, fmt.Errorf("query wardrobe totals: %w", err)
	}

	if err := db.countBy(ctx, "season", func(key string, n int) {
		stats.BySeason[Season(key)] = n
	}); err != nil {
		return nil, err
	}
	if err := db.countBy(ctx, "clothing_type", func(key string, n int) {
		stats.ByType[ClothingType(key)] = n
	}); err != nil {
		return nil, err
	}

	return stats, nil
}

// countBy groups clothes by column. column must be a trusted identifier.
func (db *DB) countBy(ctx context.Context, column string, fn func(key string, n int)) error {
	rows, err := db.QueryContext(ctx,
		`SELECT `+column+`, COUNT(*) FROM clothes GROUP BY `+column,
	)
	if err != nil {
		return fmt.Errorf("count clothes by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scan %s count: %w", column, err)
		}
		fn(key, n)
	}

	return rows.Err()
}
