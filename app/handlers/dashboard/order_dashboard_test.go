package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/models/migrations"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/rahmatd/go-storefront/app/utils/renderer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type dashboardFixture struct {
	db      *gorm.DB
	handler *DashboardHandler
	owner   *models.User
	store   *models.Store
	order   *models.Order
}

func setupDashboardTest(t *testing.T) *dashboardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))

	owner := &models.User{
		FirstName: "Store",
		LastName:  "Owner",
		Email:     "owner@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(owner).Error)

	store := &models.Store{Name: "Mug Shop", OwnerID: owner.ID, IsActive: true}
	require.NoError(t, db.Create(store).Error)

	buyer := &models.User{
		FirstName: "Some",
		LastName:  "Buyer",
		Email:     "buyer@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(buyer).Error)

	order := &models.Order{
		UserID:          buyer.ID,
		StoreID:         store.ID,
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("20.00"),
		ShippingAddress: "1 Main St",
	}
	require.NoError(t, db.Create(order).Error)

	handler := NewDashboardHandler(
		repositories.NewStoreRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewThemeRepository(db),
		renderer.New(),
	)

	return &dashboardFixture{db: db, handler: handler, owner: owner, store: store, order: order}
}

func (f *dashboardFixture) updateStatusRequest(userID, storeSlug, orderID, status string) (*http.Request, *httptest.ResponseRecorder) {
	form := url.Values{"status": {status}}
	req := httptest.NewRequest("POST", "/dashboard/store/"+storeSlug+"/orders/"+orderID+"/update/",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = mux.SetURLVars(req, map[string]string{"slug": storeSlug, "orderID": orderID})
	req = req.WithContext(context.WithValue(req.Context(), helpers.ContextKeyUserID, userID))
	return req, httptest.NewRecorder()
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	f := setupDashboardTest(t)

	req, rec := f.updateStatusRequest(f.owner.ID, f.store.Slug, f.order.ID, models.OrderStatusShipped)
	f.handler.UpdateOrderStatus(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.Contains(t, location, "/dashboard/store/"+f.store.Slug+"/orders/")
	require.Contains(t, location, "status=success")

	var reloaded models.Order
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.order.ID).Error)
	require.Equal(t, models.OrderStatusShipped, reloaded.Status)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	f := setupDashboardTest(t)

	req, rec := f.updateStatusRequest(f.owner.ID, f.store.Slug, f.order.ID, "teleported")
	f.handler.UpdateOrderStatus(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "status=error")

	var reloaded models.Order
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.order.ID).Error)
	require.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestUpdateOrderStatusHidesOtherOwnersStores(t *testing.T) {
	f := setupDashboardTest(t)

	intruder := &models.User{
		FirstName: "Other",
		LastName:  "Owner",
		Email:     "other@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, f.db.Create(intruder).Error)

	// A non-owner gets the same 404 as a store that does not exist.
	req, rec := f.updateStatusRequest(intruder.ID, f.store.Slug, f.order.ID, models.OrderStatusShipped)
	f.handler.UpdateOrderStatus(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var reloaded models.Order
	require.NoError(t, f.db.First(&reloaded, "id = ?", f.order.ID).Error)
	require.Equal(t, models.OrderStatusPending, reloaded.Status)
}

func TestUpdateOrderStatusUnknownOrderIs404(t *testing.T) {
	f := setupDashboardTest(t)

	req, rec := f.updateStatusRequest(f.owner.ID, f.store.Slug, "no-such-order", models.OrderStatusShipped)
	f.handler.UpdateOrderStatus(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
