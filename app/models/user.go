package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FirstName string  `gorm:"size:100;not null"`
	LastName  string  `gorm:"size:100"`
	Email     string  `gorm:"size:100;not null;uniqueIndex"`
	Password  string  `gorm:"size:255;not null"`
	Stores    []Store `gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
