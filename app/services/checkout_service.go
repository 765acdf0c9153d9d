package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingShippingAddress = errors.New("shipping address is required")
	ErrInsufficientStock      = errors.New("insufficient product stock")
	ErrMixedStoreCart         = errors.New("cart contains products from more than one store")
)

// CheckoutService converts a session cart into a durable order. Order
// creation, order items and stock decrements share one transaction, so a
// failed stock check can never leave a partial order behind.
type CheckoutService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepository
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

type checkoutLine struct {
	product *models.Product
	qty     int
}

// PlaceOrder validates the cart against live stock and creates the order,
// its items, and the stock decrements atomically. Lines whose product has
// disappeared are skipped; any stock shortfall aborts the whole checkout and
// leaves the cart untouched for retry. Every line must belong to a single
// store.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, cart models.Cart, shippingAddress string) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	if shippingAddress == "" {
		return nil, ErrMissingShippingAddress
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("CheckoutService: rolling back transaction due to panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	var (
		lines   []checkoutLine
		storeID string
		total   = decimal.Zero
	)

	for _, productID := range sortedProductIDs(cart) {
		line := cart[productID]

		product, err := s.productRepo.GetByIDTx(ctx, tx, productID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
		}
		if product == nil {
			continue
		}

		if product.Stock < line.Qty {
			tx.Rollback()
			return nil, fmt.Errorf("%w: '%s' has %d in stock, %d requested", ErrInsufficientStock, product.Name, product.Stock, line.Qty)
		}

		if storeID == "" {
			storeID = product.StoreID
		} else if product.StoreID != storeID {
			tx.Rollback()
			return nil, ErrMixedStoreCart
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
		lines = append(lines, checkoutLine{product: product, qty: line.Qty})
	}

	if len(lines) == 0 {
		tx.Rollback()
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		StoreID:         storeID,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItems := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.product.ID,
			Quantity:  line.qty,
			Price:     line.product.Price,
		})
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	for _, line := range lines {
		// Conditional decrement re-validates stock inside the transaction;
		// a concurrent checkout that got there first rolls this one back.
		ok, err := s.productRepo.DecrementStock(ctx, tx, line.product.ID, line.qty)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to decrement stock for product %s: %w", line.product.ID, err)
		}
		if !ok {
			tx.Rollback()
			return nil, fmt.Errorf("%w: '%s' sold out while checking out", ErrInsufficientStock, line.product.Name)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("CheckoutService: order %s placed for user %s, store %s, total %s", order.ID, userID, storeID, total.String())
	return order, nil
}
