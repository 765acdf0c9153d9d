package services

import (
	"context"
	"testing"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAddItemStartsAtOneAndIncrements(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	product := seedProduct(t, db, store, "Mug", "10.00", 10)
	svc := NewCartService(repositories.NewProductRepository(db))

	cart, added, err := svc.AddItem(context.Background(), nil, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.ID, added.ID)
	require.Equal(t, 1, cart[product.ID].Qty)
	require.Equal(t, "Mug", cart[product.ID].ProductName)

	cart, _, err = svc.AddItem(context.Background(), cart, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, cart[product.ID].Qty)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(repositories.NewProductRepository(db))

	_, _, err := svc.AddItem(context.Background(), models.Cart{}, "nope")
	require.Error(t, err)
}

func TestUpdateQtySetsExactlyAndRemovesAtZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(repositories.NewProductRepository(db))

	cart := models.Cart{"p1": {ProductName: "Mug", Qty: 2}}

	cart = svc.UpdateQty(cart, "p1", 7)
	require.Equal(t, 7, cart["p1"].Qty)

	cart = svc.UpdateQty(cart, "p1", 0)
	require.NotContains(t, cart, "p1")

	cart = svc.UpdateQty(models.Cart{"p1": {ProductName: "Mug", Qty: 2}}, "p1", -3)
	require.NotContains(t, cart, "p1")
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(repositories.NewProductRepository(db))

	cart := models.Cart{"p1": {ProductName: "Mug", Qty: 2}}
	cart = svc.RemoveItem(cart, "p1")
	require.NotContains(t, cart, "p1")

	cart = svc.RemoveItem(cart, "p1")
	require.Empty(t, cart)
}

func TestViewUsesLivePriceAndDropsMissingProducts(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	product := seedProduct(t, db, store, "Mug", "10.00", 10)
	svc := NewCartService(repositories.NewProductRepository(db))

	cart := models.Cart{
		product.ID:     {ProductName: product.Name, Qty: 3},
		"gone-product": {ProductName: "Ghost", Qty: 5},
	}

	// Price changed after the product went into the cart.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("12.50")).Error)

	view, err := svc.View(context.Background(), cart)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 3, view.Items[0].Qty)
	require.True(t, view.Items[0].Subtotal.Equal(decimal.RequireFromString("37.50")),
		"subtotal = %s", view.Items[0].Subtotal)
	require.True(t, view.Total.Equal(decimal.RequireFromString("37.50")))
}
