package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LayoutWidthBoxed = "container"
	LayoutWidthFluid = "fluid"
)

type ThemeSection struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Enabled  bool           `json:"enabled"`
	Settings map[string]any `json:"settings"`
}

type ThemeSections []ThemeSection

// StoreTheme holds the visual configuration of a storefront, one row per
// store. Sections is an ordered page composition persisted as JSON.
type StoreTheme struct {
	ID              string        `gorm:"size:36;not null;uniqueIndex;primary_key"`
	StoreID         string        `gorm:"size:36;not null;uniqueIndex"`
	Store           Store         `gorm:"foreignKey:StoreID"`
	Sections        ThemeSections `gorm:"serializer:json"`
	PrimaryColor    string        `gorm:"size:7;default:'#007bff'"`
	SecondaryColor  string        `gorm:"size:7;default:'#6c757d'"`
	BackgroundColor string        `gorm:"size:7;default:'#ffffff'"`
	TextColor       string        `gorm:"size:7;default:'#212529'"`
	FontFamily      string        `gorm:"size:100;default:'Arial, sans-serif'"`
	LogoPath        string        `gorm:"size:255"`
	LayoutWidth     string        `gorm:"size:20;default:'container'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t *StoreTheme) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

// DefaultSections returns the starting page composition for a new theme.
func DefaultSections(storeName string) ThemeSections {
	return ThemeSections{
		{
			ID:      "hero",
			Type:    "hero_banner",
			Enabled: true,
			Settings: map[string]any{
				"title":            fmt.Sprintf("Welcome to %s", storeName),
				"subtitle":         "Discover amazing products",
				"button_text":      "Shop Now",
				"background_image": "",
			},
		},
		{
			ID:      "featured_products",
			Type:    "product_grid",
			Enabled: true,
			Settings: map[string]any{
				"title":          "Featured Products",
				"products_count": 8,
			},
		},
		{
			ID:      "footer",
			Type:    "footer",
			Enabled: true,
			Settings: map[string]any{
				"text":         fmt.Sprintf("© %d %s. All rights reserved.", time.Now().Year(), storeName),
				"social_links": []string{},
			},
		},
	}
}
