package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses maps each valid status to its display label. Transitions are
// owner-driven and unconstrained; the only rule is membership in this set.
var OrderStatuses = map[string]string{
	OrderStatusPending:    "Pending",
	OrderStatusProcessing: "Processing",
	OrderStatusShipped:    "Shipped",
	OrderStatusDelivered:  "Delivered",
	OrderStatusCancelled:  "Cancelled",
}

func IsValidOrderStatus(status string) bool {
	_, ok := OrderStatuses[status]
	return ok
}

type Order struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID          string          `gorm:"size:36;index;not null"`
	User            User            `gorm:"foreignKey:UserID"`
	StoreID         string          `gorm:"size:36;index;not null"`
	Store           Store           `gorm:"foreignKey:StoreID"`
	Status          string          `gorm:"size:20;default:'pending'"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingAddress string          `gorm:"type:text"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
