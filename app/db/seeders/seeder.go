package seeders

import (
	"log"

	"github.com/rahmatd/go-storefront/app/db/fakers"
	"gorm.io/gorm"
)

const (
	storeCount         = 3
	productsPerStore   = 8
	categoriesPerStore = 2
)

// DBSeed fills an empty database with a few stores, each with its own
// categories and products, so the storefront has something to show.
func DBSeed(db *gorm.DB) error {
	for i := 0; i < storeCount; i++ {
		store := fakers.StoreFaker(db)
		if err := db.Create(store).Error; err != nil {
			return err
		}

		for j := 0; j < categoriesPerStore; j++ {
			category := fakers.CategoryFaker(db, store)
			if err := db.Create(category).Error; err != nil {
				return err
			}

			for k := 0; k < productsPerStore/categoriesPerStore; k++ {
				product := fakers.ProductFaker(db, store, category)
				if err := db.Create(product).Error; err != nil {
					return err
				}
			}
		}

		log.Printf("Seeder: store %q ready", store.Name)
	}

	return nil
}
