package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rahmatd/go-storefront/app/configs"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/models/migrations"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) http.Handler {
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
		FirstName: "Test",
		LastName:  "Owner",
		Email:     "owner@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(owner).Error)

	domain := "shop.example.com"
	store := &models.Store{
		Name:     "Mug Shop",
		Domain:   &domain,
		OwnerID:  owner.ID,
		IsActive: true,
	}
	require.NoError(t, db.Create(store).Error)

	env := configs.ENV{AppEnv: "development"}
	sessionKeys := &configs.SessionKeys{
		AuthKey: bytes.Repeat([]byte("a"), 32),
		EncKey:  bytes.Repeat([]byte("e"), 32),
	}

	return NewRouter(db, env, sessionKeys)
}

func TestRouterDeniesManagementPathsOnCustomDomain(t *testing.T) {
	router := setupRouter(t)

	// /admin/ has no registered route at all; the denial must still fire.
	for _, path := range []string{
		"/admin/",
		"/admin/anything/nested",
		"/dashboard/store/mug-shop/",
		"/my-stores/",
		"/create-store/",
	} {
		req := httptest.NewRequest("GET", "http://shop.example.com"+path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)
		require.Contains(t, rec.Body.String(), "Access Denied", "path %s", path)
	}
}

func TestRouterKeepsManagementPathsOnPlatformHost(t *testing.T) {
	router := setupRouter(t)

	// On the platform host the same prefixes fall through to routing:
	// /admin/ has no handler, /my-stores/ redirects anonymous users to login.
	req := httptest.NewRequest("GET", "http://platform.test/admin/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest("GET", "http://platform.test/my-stores/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/login")
}
