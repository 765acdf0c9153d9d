package handlers

import (
	"log"
	"net/http"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orderRepo repositories.OrderRepository
	render    *render.Render
}

func NewOrderHandler(orderRepo repositories.OrderRepository, render *render.Render) *OrderHandler {
	return &OrderHandler{orderRepo: orderRepo, render: render}
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID := helpers.UserIDFromContext(r)

	orders, err := h.orderRepo.GetByUser(r.Context(), userID)
	if err != nil {
		log.Printf("MyOrders: failed to load orders for user %s: %v", userID, err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "My Orders",
		"Orders": orders,
	})

	_ = h.render.HTML(w, http.StatusOK, "my_orders", data)
}
