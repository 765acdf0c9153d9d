package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	for status := range OrderStatuses {
		assert.True(t, IsValidOrderStatus(status), "status %q", status)
	}

	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("teleported"))
	assert.False(t, IsValidOrderStatus("Pending"))
}

func TestOrderItemTotal(t *testing.T) {
	item := OrderItem{
		Quantity: 3,
		Price:    decimal.RequireFromString("12.50"),
	}
	assert.True(t, item.Total().Equal(decimal.RequireFromString("37.50")))
}
