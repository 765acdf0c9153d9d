package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/models/migrations"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every connection to a plain :memory: DSN gets its own database, so
	// pin the pool to a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedStore(t *testing.T, db *gorm.DB, name string) *models.Store {
	t.Helper()

	owner := &models.User{
		FirstName: "Test",
		LastName:  "Owner",
		Email:     name + "-owner@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(owner).Error)

	store := &models.Store{
		Name:     name,
		OwnerID:  owner.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedProduct(t *testing.T, db *gorm.DB, store *models.Store, name string, price string, stock int) *models.Product {
	t.Helper()

	category := &models.Category{Name: name + " Category", StoreID: store.ID}
	require.NoError(t, db.Create(category).Error)

	product := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      stock,
		Available:  true,
		CategoryID: category.ID,
		StoreID:    store.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func newCheckoutService(db *gorm.DB) *CheckoutService {
	return NewCheckoutService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
	)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	_, err := svc.PlaceOrder(context.Background(), "user-1", models.Cart{}, "1 Main St")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderMissingShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	cart := models.Cart{"p1": {ProductName: "Mug", Qty: 1}}
	_, err := svc.PlaceOrder(context.Background(), "user-1", cart, "")
	require.ErrorIs(t, err, ErrMissingShippingAddress)
}

func TestPlaceOrderSuccess(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	product := seedProduct(t, db, store, "Mug", "10.00", 10)
	svc := newCheckoutService(db)

	cart := models.Cart{product.ID: {ProductName: product.Name, Qty: 2}}
	order, err := svc.PlaceOrder(context.Background(), "user-1", cart, "1 Main St")
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, store.ID, order.StoreID)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("20.00")),
		"total = %s", order.TotalAmount)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Price.Equal(decimal.RequireFromString("10.00")))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 8, reloaded.Stock)
}

func TestPlaceOrderMultipleLines(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	mug := seedProduct(t, db, store, "Mug", "10.00", 10)
	plate := seedProduct(t, db, store, "Plate", "4.50", 6)
	svc := newCheckoutService(db)

	// The fixture pool holds a single connection, so every product
	// re-validation must go through the open transaction or this blocks.
	cart := models.Cart{
		mug.ID:   {ProductName: mug.Name, Qty: 2},
		plate.ID: {ProductName: plate.Name, Qty: 4},
	}
	order, err := svc.PlaceOrder(context.Background(), "user-1", cart, "1 Main St")
	require.NoError(t, err)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("38.00")),
		"total = %s", order.TotalAmount)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)

	var mugReloaded, plateReloaded models.Product
	require.NoError(t, db.First(&mugReloaded, "id = ?", mug.ID).Error)
	require.NoError(t, db.First(&plateReloaded, "id = ?", plate.ID).Error)
	require.Equal(t, 8, mugReloaded.Stock)
	require.Equal(t, 2, plateReloaded.Stock)
}

func TestPlaceOrderInsufficientStockLeavesNothingBehind(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	product := seedProduct(t, db, store, "Mug", "10.00", 3)
	svc := newCheckoutService(db)

	cart := models.Cart{product.ID: {ProductName: product.Name, Qty: 5}}
	_, err := svc.PlaceOrder(context.Background(), "user-1", cart, "1 Main St")
	require.ErrorIs(t, err, ErrInsufficientStock)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, itemCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 3, reloaded.Stock)
}

func TestPlaceOrderRejectsMixedStoreCart(t *testing.T) {
	db := setupTestDB(t)
	storeA := seedStore(t, db, "Shop A")
	storeB := seedStore(t, db, "Shop B")
	productA := seedProduct(t, db, storeA, "Mug", "10.00", 5)
	productB := seedProduct(t, db, storeB, "Plate", "15.00", 5)
	svc := newCheckoutService(db)

	cart := models.Cart{
		productA.ID: {ProductName: productA.Name, Qty: 1},
		productB.ID: {ProductName: productB.Name, Qty: 1},
	}
	_, err := svc.PlaceOrder(context.Background(), "user-1", cart, "1 Main St")
	require.ErrorIs(t, err, ErrMixedStoreCart)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)
}

func TestPlaceOrderAllLinesMissingIsEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := newCheckoutService(db)

	cart := models.Cart{"gone-product": {ProductName: "Mug", Qty: 1}}
	_, err := svc.PlaceOrder(context.Background(), "user-1", cart, "1 Main St")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderNeverOversells(t *testing.T) {
	db := setupTestDB(t)
	store := seedStore(t, db, "Mug Shop")
	product := seedProduct(t, db, store, "Mug", "10.00", 10)
	svc := newCheckoutService(db)

	// Two buyers race for the same stock; the conditional decrement must
	// let at most one of them through.
	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []string{"user-1", "user-2"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			<-start
			cart := models.Cart{product.ID: {ProductName: product.Name, Qty: 6}}
			_, err := svc.PlaceOrder(context.Background(), userID, cart, userID+" address")
			errs <- err
		}(userID)
	}
	close(start)
	wg.Wait()
	close(errs)

	var successes, rejections int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientStock):
			rejections++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, rejections)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.EqualValues(t, 1, orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 4, reloaded.Stock)
	require.GreaterOrEqual(t, reloaded.Stock, 0)
}
