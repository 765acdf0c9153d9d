package dashboard

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
)

func (h *DashboardHandler) Orders(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}

	statusFilter := r.URL.Query().Get("status")

	orders, err := h.orderRepo.GetByStore(r.Context(), store.ID, statusFilter)
	if err != nil {
		log.Printf("Dashboard.Orders: failed to load orders: %v", err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         store.Name + " - Orders",
		"Store":         store,
		"Orders":        orders,
		"StatusFilter":  statusFilter,
		"StatusOptions": models.OrderStatuses,
	})

	_ = h.render.HTML(w, http.StatusOK, "dashboard/orders", data)
}

func (h *DashboardHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}

	orderID := mux.Vars(r)["orderID"]
	order, err := h.orderRepo.GetByIDForStore(r.Context(), orderID, store.ID)
	if err != nil {
		log.Printf("Dashboard.OrderDetail: failed to load order %s: %v", orderID, err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         fmt.Sprintf("Order %s", order.ID),
		"Store":         store,
		"Order":         order,
		"StatusOptions": models.OrderStatuses,
	})

	_ = h.render.HTML(w, http.StatusOK, "dashboard/order_detail", data)
}

// UpdateOrderStatus sets a new status on a store's order. The target status
// must be a member of the fixed set; anything else is rejected without
// touching the order.
func (h *DashboardHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	ordersPath := h.basePath(store) + "/orders/"

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, ordersPath, "error", "Could not read form.")
		return
	}

	orderID := mux.Vars(r)["orderID"]
	newStatus := r.PostFormValue("status")

	order, err := h.orderRepo.GetByIDForStore(r.Context(), orderID, store.ID)
	if err != nil {
		log.Printf("Dashboard.UpdateOrderStatus: failed to load order %s: %v", orderID, err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	if !models.IsValidOrderStatus(newStatus) {
		helpers.RedirectWithMessage(w, r, ordersPath, "error", "Invalid status!")
		return
	}

	if err := h.orderRepo.UpdateStatus(r.Context(), order.ID, newStatus); err != nil {
		log.Printf("Dashboard.UpdateOrderStatus: failed to update order %s: %v", order.ID, err)
		helpers.RedirectWithMessage(w, r, ordersPath, "error", "Failed to update order status.")
		return
	}

	helpers.RedirectWithMessage(w, r, ordersPath, "success", fmt.Sprintf("Order status updated to %s!", newStatus))
}
