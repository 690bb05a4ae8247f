package database

import (
	"time"
)

// Clothing is one item in the wardrobe.
type Clothing struct {
	ID           string       `json:"id"` // UUID v4
	Label        string       `json:"label"`
	Type         ClothingType `json:"clothing_type"`
	Season       Season       `json:"season"`
	WearCount    int          `json:"wear_count"`
	PurchaseDate time.Time    `json:"purchase_date"`
	ImageURL     *string      `json:"image_url"` // nullable
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewClothing holds the fields for creating a clothing item.
// WearCount defaults to 0 and PurchaseDate to the current time.
type NewClothing struct {
	Label        string       `json:"label"`
	Type         ClothingType `json:"clothing_type"`
	Season       Season       `json:"season"`
	WearCount    *int         `json:"wear_count,omitempty"`
	PurchaseDate *time.Time   `json:"purchase_date,omitempty"`
	ImageURL     *string      `json:"image_url,omitempty"`
}

// ClothingUpdate is a partial update. Nil fields are left unchanged.
type ClothingUpdate struct {
	Label     *string       `json:"label,omitempty"`
	Type      *ClothingType `json:"clothing_type,omitempty"`
	Season    *Season       `json:"season,omitempty"`
	WearCount *int          `json:"wear_count,omitempty"`
	ImageURL  *string       `json:"image_url,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u ClothingUpdate) IsEmpty() bool {
	return u.Label == nil && u.Type == nil && u.Season == nil && u.WearCount == nil && u.ImageURL == nil
}

// WardrobeStats summarizes the wardrobe.
type WardrobeStats struct {
	Total      int                  `json:"total"`
	TotalWears int                  `json:"total_wears"`
	BySeason   map[Season]int       `json:"by_season"`
	ByType     map[ClothingType]int `json:"by_type"`
}

// -----------------------------------------------------------------
// Enum types
// -----------------------------------------------------------------

// ClothingType is the kind of garment.
type ClothingType string

const (
	ClothingTypeTop       ClothingType = "top"
	ClothingTypeBottom    ClothingType = "bottom"
	ClothingTypeDress     ClothingType = "dress"
	ClothingTypeOuterwear ClothingType = "outerwear"
)

// ValidClothingTypes returns all valid clothing types.
func ValidClothingTypes() []ClothingType {
	return []ClothingType{
		ClothingTypeTop,
		ClothingTypeBottom,
		ClothingTypeDress,
		ClothingTypeOuterwear,
	}
}

// IsValid checks if a clothing type is valid.
func (ct ClothingType) IsValid() bool {
	for _, valid := range ValidClothingTypes() {
		if ct == valid {
			return true
		}
	}
	return false
}

// Season is the season a garment is worn in.
type Season string

const (
	SeasonSpringAutumn Season = "spring-autumn"
	SeasonSummer       Season = "summer"
	SeasonWinter       Season = "winter"
)

// ValidSeasons returns all valid seasons.
func ValidSeasons() []Season {
	return []Season{
		SeasonSpringAutumn,
		SeasonSummer,
		SeasonWinter,
	}
}

// IsValid checks if a season is valid.
func (s Season) IsValid() bool {
	for _, valid := range ValidSeasons() {
		if s == valid {
			return true
		}
	}
	return false
}
