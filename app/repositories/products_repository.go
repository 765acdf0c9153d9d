package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/rahmatd/go-storefront/app/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByIDTx reads the product through the given tx so checkout
	// re-validation sees the transaction's view of stock.
	GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error)
	GetByStoreAndSlug(ctx context.Context, storeID, slug string) (*models.Product, error)
	GetByStore(ctx context.Context, storeID string) ([]models.Product, error)
	SearchByStore(ctx context.Context, storeID, keyword, categoryID string) ([]models.Product, error)
	GetAvailableByStore(ctx context.Context, storeID, categorySlug, keyword string) ([]models.Product, error)
	GetLowStockByStore(ctx context.Context, storeID string, threshold, limit int) ([]models.Product, error)
	CountByStore(ctx context.Context, storeID string) (int64, error)
	// DecrementStock performs a conditional decrement on the given tx:
	// stock = stock - qty only where stock >= qty. Returns false when the
	// condition did not hold, so concurrent checkouts can never drive stock
	// negative.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *gormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetByStoreAndSlug(ctx context.Context, storeID, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("store_id = ? AND slug = ?", storeID, slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetByStore(ctx context.Context, storeID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

func (r *gormProductRepository) SearchByStore(ctx context.Context, storeID, keyword, categoryID string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("store_id = ?", storeID)

	if keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	err := query.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *gormProductRepository) GetAvailableByStore(ctx context.Context, storeID, categorySlug, keyword string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("products.store_id = ? AND products.available = ?", storeID, true)

	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(products.name) LIKE ?", pattern)
	}

	var products []models.Product
	err := query.Order("products.created_at DESC").Find(&products).Error
	return products, err
}

func (r *gormProductRepository) GetLowStockByStore(ctx context.Context, storeID string, threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND stock < ?", storeID, threshold).
		Order("stock ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *gormProductRepository) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *gormProductRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
