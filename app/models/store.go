package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Store is the tenant boundary: every category, product and order hangs off
// exactly one store. Slug is globally unique; Domain, when set, maps a whole
// hostname onto the store.
type Store struct {
	ID          string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string  `gorm:"size:200;not null"`
	Slug        string  `gorm:"size:200;not null;uniqueIndex"`
	Description string  `gorm:"type:text"`
	Domain      *string `gorm:"size:255;uniqueIndex"`
	OwnerID     string  `gorm:"size:36;index;not null"`
	Owner       User    `gorm:"foreignKey:OwnerID"`
	IsActive    bool    `gorm:"default:true"`

	Categories []Category  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Products   []Product   `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Orders     []Order     `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Theme      *StoreTheme `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Store) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Slug == "" {
		s.Slug = slug.Make(s.Name)
	}
	return
}
