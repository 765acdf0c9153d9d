package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID   string  `gorm:"size:36;not null;index" json:"order_id"`
	Order     Order   `gorm:"foreignKey:OrderID;references:ID"`
	ProductID string  `gorm:"size:36;not null;index" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;references:ID"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	// Price is the unit price at purchase time, decoupled from the product's
	// current price.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) Total() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
