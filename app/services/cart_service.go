package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
)

// CartService operates on session cart state passed in explicitly; it owns no
// cart storage of its own.
type CartService struct {
	productRepo repositories.ProductRepository
}

func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{productRepo: productRepo}
}

type CartViewItem struct {
	Product  models.Product
	Qty      int
	Subtotal decimal.Decimal
}

type CartView struct {
	Items []CartViewItem
	Total decimal.Decimal
}

// AddItem increments the line for productID, or inserts it with quantity 1
// and a name snapshot. There is no stock check at add time; stock is enforced
// at checkout.
func (s *CartService) AddItem(ctx context.Context, cart models.Cart, productID string) (models.Cart, *models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return cart, nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if product == nil {
		return cart, nil, fmt.Errorf("product %s not found", productID)
	}

	if cart == nil {
		cart = models.Cart{}
	}

	if line, ok := cart[productID]; ok {
		line.Qty++
		cart[productID] = line
	} else {
		cart[productID] = models.CartLine{
			ProductName: product.Name,
			Qty:         1,
		}
	}

	return cart, product, nil
}

// UpdateQty sets the line's quantity exactly; a target of zero or below
// removes the line.
func (s *CartService) UpdateQty(cart models.Cart, productID string, qty int) models.Cart {
	if cart == nil {
		return models.Cart{}
	}

	if qty <= 0 {
		delete(cart, productID)
		return cart
	}

	if line, ok := cart[productID]; ok {
		line.Qty = qty
		cart[productID] = line
	}
	return cart
}

// RemoveItem deletes the line unconditionally; removing an absent line is a
// no-op.
func (s *CartService) RemoveItem(cart models.Cart, productID string) models.Cart {
	if cart == nil {
		return models.Cart{}
	}
	delete(cart, productID)
	return cart
}

// View resolves each line against the live product record. Subtotals use the
// current price, not any snapshot, and lines whose product no longer exists
// are silently dropped from both display and totals.
func (s *CartService) View(ctx context.Context, cart models.Cart) (*CartView, error) {
	view := &CartView{Total: decimal.Zero}

	for _, productID := range sortedProductIDs(cart) {
		line := cart[productID]

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
		}
		if product == nil {
			continue
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		view.Items = append(view.Items, CartViewItem{
			Product:  *product,
			Qty:      line.Qty,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}

	return view, nil
}

func sortedProductIDs(cart models.Cart) []string {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
