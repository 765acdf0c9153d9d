package fakers

import (
	"log"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	password := helpers.HashPassword("password")
	if password == "" {
		log.Fatal("UserFaker: hash password failed")
	}

	firstName := faker.FirstName()
	lastName := faker.LastName()

	return &models.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     strings.ToLower(firstName + "." + lastName + "@example.com"),
		Password:  password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
