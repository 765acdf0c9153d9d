package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string          `gorm:"size:200;not null"`
	Slug        string          `gorm:"size:200;not null;uniqueIndex:idx_products_slug_store"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Available   bool            `gorm:"default:true"`
	ImagePath   string          `gorm:"size:255"`
	CategoryID  string          `gorm:"size:36;index;not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	StoreID     string          `gorm:"size:36;not null;uniqueIndex:idx_products_slug_store;index"`
	Store       Store           `gorm:"foreignKey:StoreID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return
}
