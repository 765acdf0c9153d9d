package repositories

import (
	"context"
	"errors"

	"github.com/rahmatd/go-storefront/app/models"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id string) (*models.Store, error)
	FindActiveByDomain(ctx context.Context, domain string) (*models.Store, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Store, error)
	// FindBySlugAndOwner doubles as the dashboard authorization check: a
	// store that exists but belongs to someone else is reported the same way
	// as a store that does not exist at all.
	FindBySlugAndOwner(ctx context.Context, slug, ownerID string) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Store, error)
	GetActiveStores(ctx context.Context) ([]models.Store, error)
	Delete(ctx context.Context, id string) error
}

type gormStoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &gormStoreRepository{db: db}
}

func (r *gormStoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *gormStoreRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *gormStoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) FindActiveByDomain(ctx context.Context, domain string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("domain = ? AND is_active = ?", domain, true).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) FindActiveBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) FindBySlugAndOwner(ctx context.Context, slug, ownerID string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Where("slug = ? AND owner_id = ?", slug, ownerID).
		First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *gormStoreRepository) GetActiveStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *gormStoreRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, "id = ?", id).Error
}
