package database

// migrationsSQL contains all database migrations, applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Clothes,
	2: migrationV2ClothesIndexes,
}

// migrationV1Clothes creates the wardrobe table.
//
// Ids are UUID v4 strings generated by the application. Timestamps and the purchase date are
// RFC3339 TEXT, matching what parseTimestamp reads back.
const migrationV1Clothes = `
-- Migration 001: Wardrobe

CREATE TABLE IF NOT EXISTS clothes (
    id TEXT PRIMARY KEY,

    label TEXT NOT NULL,

    clothing_type TEXT NOT NULL CHECK (clothing_type IN (
        'top',
        'bottom',
        'dress',
        'outerwear'
    )),

    season TEXT NOT NULL CHECK (season IN (
        'spring-autumn',
        'summer',
        'winter'
    )),

    wear_count INTEGER NOT NULL DEFAULT 0 CHECK (wear_count >= 0),
    purchase_date TEXT NOT NULL,

    -- Optional link to a photo of the item
    image_url TEXT,

    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// migrationV2ClothesIndexes adds indexes for the season and type filters.
const migrationV2ClothesIndexes = `
-- Migration 002: Filter indexes

CREATE INDEX IF NOT EXISTS idx_clothes_season
    ON clothes(season);

CREATE INDEX IF NOT EXISTS idx_clothes_type
    ON clothes(clothing_type);

CREATE INDEX IF NOT EXISTS idx_clothes_created
    ON clothes(created_at);
`
