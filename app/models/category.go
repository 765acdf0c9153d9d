package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:200;not null"`
	Slug      string `gorm:"size:200;not null;uniqueIndex:idx_categories_slug_store"`
	StoreID   string `gorm:"size:36;not null;uniqueIndex:idx_categories_slug_store;index"`
	Store     Store  `gorm:"foreignKey:StoreID"`
	Products  []Product
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return
}
