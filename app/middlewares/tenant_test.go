package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/models/migrations"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTenantTest(t *testing.T) (*gorm.DB, repositories.StoreRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db, repositories.NewStoreRepository(db)
}

func createStore(t *testing.T, db *gorm.DB, name string, domain string, active bool) *models.Store {
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
	if domain != "" {
		store.Domain = &domain
	}
	require.NoError(t, db.Create(store).Error)

	if !active {
		// Create skips zero-valued fields that carry a column default, so
		// deactivation has to be an explicit update.
		require.NoError(t, db.Model(store).Update("is_active", false).Error)
	}
	return store
}

type resolvedTenant struct {
	store          *models.Store
	isCustomDomain bool
}

func resolve(t *testing.T, repo repositories.StoreRepository, host, path string) (*resolvedTenant, *httptest.ResponseRecorder) {
	t.Helper()

	var got resolvedTenant
	handler := TenantResolver(repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.store = StoreFromContext(r)
		got.isCustomDomain = IsCustomDomain(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "http://"+host+path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return &got, rec
}

func TestTenantResolverBySlugPath(t *testing.T) {
	db, repo := setupTenantTest(t)
	storeA := createStore(t, db, "Shop A", "", true)
	storeB := createStore(t, db, "Shop B", "", true)

	got, rec := resolve(t, repo, "platform.test", "/store/"+storeA.Slug+"/products/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.store)
	require.Equal(t, storeA.ID, got.store.ID)
	require.False(t, got.isCustomDomain)

	got, _ = resolve(t, repo, "platform.test", "/store/"+storeB.Slug+"/")
	require.Equal(t, storeB.ID, got.store.ID)
}

func TestTenantResolverDomainWinsOverPath(t *testing.T) {
	db, repo := setupTenantTest(t)
	domainStore := createStore(t, db, "Domain Shop", "shop.example.com", true)
	slugStore := createStore(t, db, "Slug Shop", "", true)

	got, _ := resolve(t, repo, "shop.example.com:8080", "/store/"+slugStore.Slug+"/")
	require.NotNil(t, got.store)
	require.Equal(t, domainStore.ID, got.store.ID)
	require.True(t, got.isCustomDomain)
}

func TestTenantResolverMissIsNotAnError(t *testing.T) {
	_, repo := setupTenantTest(t)

	got, rec := resolve(t, repo, "platform.test", "/store/no-such-store/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, got.store)
	require.False(t, got.isCustomDomain)
}

func TestTenantResolverIgnoresInactiveStores(t *testing.T) {
	db, repo := setupTenantTest(t)
	store := createStore(t, db, "Closed Shop", "closed.example.com", false)

	got, _ := resolve(t, repo, "closed.example.com", "/")
	require.Nil(t, got.store)
	require.False(t, got.isCustomDomain)

	got, _ = resolve(t, repo, "platform.test", "/store/"+store.Slug+"/")
	require.Nil(t, got.store)
}

func TestCustomDomainBlocksManagementPaths(t *testing.T) {
	db, repo := setupTenantTest(t)
	createStore(t, db, "Domain Shop", "shop.example.com", true)

	for _, path := range []string{
		"/admin/",
		"/dashboard/store/whatever/",
		"/my-stores/",
		"/create-store/",
	} {
		_, rec := resolve(t, repo, "shop.example.com", path)
		require.Equal(t, http.StatusForbidden, rec.Code, "path %s", path)
		require.Contains(t, rec.Body.String(), "Access Denied")
	}

	// Same paths stay reachable on the platform host.
	_, rec := resolve(t, repo, "platform.test", "/my-stores/")
	require.Equal(t, http.StatusOK, rec.Code)
}
