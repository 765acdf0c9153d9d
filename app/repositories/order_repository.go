package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Order, error)
	GetByIDForStore(ctx context.Context, id, storeID string) (*models.Order, error)
	GetByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetByStore(ctx context.Context, storeID, statusFilter string) ([]models.Order, error)
	GetRecentByStore(ctx context.Context, storeID string, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	CountByStore(ctx context.Context, storeID string) (int64, error)
	CountByStoreAndStatus(ctx context.Context, storeID, status string) (int64, error)
	SumTotalByStore(ctx context.Context, storeID string) (decimal.Decimal, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Preload("Store").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByIDForStore(ctx context.Context, id, storeID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Preload("User").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Preload("Store").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) GetByStore(ctx context.Context, storeID, statusFilter string) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("User").
		Where("store_id = ?", storeID)

	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var orders []models.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) GetRecentByStore(ctx context.Context, storeID string, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormOrderRepository) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *gormOrderRepository) CountByStoreAndStatus(ctx context.Context, storeID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ? AND status = ?", storeID, status).
		Count(&count).Error
	return count, err
}

func (r *gormOrderRepository) SumTotalByStore(ctx context.Context, storeID string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
