package fakers

import (
	"log"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rahmatd/go-storefront/app/models"
	"gorm.io/gorm"
)

func StoreFaker(db *gorm.DB) *models.Store {
	owner := UserFaker(db)
	if err := db.FirstOrCreate(owner, "email = ?", owner.Email).Error; err != nil {
		log.Fatal("StoreFaker: create/find owner failed:", err)
	}

	name := faker.LastName() + " Goods"

	return &models.Store{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
		OwnerID:     owner.ID,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
