package fakers

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ProductFaker(db *gorm.DB, store *models.Store, category *models.Category) *models.Product {
	if category == nil {
		category = CategoryFaker(db, store)
		if err := db.Create(category).Error; err != nil {
			log.Fatal("ProductFaker: create category failed:", err)
		}
	}

	name := faker.Word() + " " + faker.Word()

	imagePaths := []string{
		"/images/products/placeholder.jpg",
		"/images/products/placeholder-1.jpg",
		"/images/products/placeholder-2.jpg",
	}

	return &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromFloat(fakePrice()),
		Stock:       rand.Intn(20) + 1,
		Available:   true,
		ImagePath:   imagePaths[rand.Intn(len(imagePaths))],
		CategoryID:  category.ID,
		StoreID:     store.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func CategoryFaker(db *gorm.DB, store *models.Store) *models.Category {
	name := faker.Word()

	return &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Make(name + "-" + uuid.NewString()[:6]),
		StoreID:   store.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func fakePrice() float64 {
	return precision(rand.Float64()*math.Pow10(rand.Intn(3)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
