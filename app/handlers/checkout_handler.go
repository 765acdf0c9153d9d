package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/rahmatd/go-storefront/app/services"
	"github.com/rahmatd/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	cartService     *services.CartService
	checkoutService *services.CheckoutService
	orderRepo       repositories.OrderRepository
	sessionStore    sessions.Store
	render          *render.Render
}

func NewCheckoutHandler(
	cartService *services.CartService,
	checkoutService *services.CheckoutService,
	orderRepo repositories.OrderRepository,
	sessionStore sessions.Store,
	render *render.Render,
) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		orderRepo:       orderRepo,
		sessionStore:    sessionStore,
		render:          render,
	}
}

func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	cart := h.sessionStore.GetCart(r)
	if len(cart) == 0 {
		helpers.RedirectWithMessage(w, r, "/carts", "warning", "Your cart is empty!")
		return
	}

	view, err := h.cartService.View(r.Context(), cart)
	if err != nil {
		log.Printf("CheckoutPage: failed to build cart view: %v", err)
		http.Error(w, "Failed to load checkout", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Checkout",
		"CartItems": view.Items,
		"Total":     view.Total,
	})

	_ = h.render.HTML(w, http.StatusOK, "checkout", data)
}

// ProcessCheckout places the order. Stock failures preserve the cart for
// retry; only a successful placement clears it.
func (h *CheckoutHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	userID := helpers.UserIDFromContext(r)
	cart := h.sessionStore.GetCart(r)
	shippingAddress := r.FormValue("shipping_address")

	order, err := h.checkoutService.PlaceOrder(r.Context(), userID, cart, shippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			helpers.RedirectWithMessage(w, r, "/carts", "warning", "Your cart is empty!")
		case errors.Is(err, services.ErrMissingShippingAddress):
			helpers.RedirectWithMessage(w, r, "/checkout", "error", "Please provide a shipping address!")
		case errors.Is(err, services.ErrInsufficientStock):
			helpers.RedirectWithMessage(w, r, "/carts", "error", err.Error())
		case errors.Is(err, services.ErrMixedStoreCart):
			helpers.RedirectWithMessage(w, r, "/carts", "error", "All items in an order must come from the same store.")
		default:
			log.Printf("ProcessCheckout: failed to place order for user %s: %v", userID, err)
			helpers.RedirectWithMessage(w, r, "/checkout", "error", "Failed to place the order. Please try again.")
		}
		return
	}

	if err := h.sessionStore.ClearCart(w, r); err != nil {
		log.Printf("ProcessCheckout: failed to clear cart session: %v", err)
	}

	helpers.RedirectWithMessage(w, r, "/orders/success/"+order.ID, "success", "Order placed successfully!")
}

// OrderSuccess renders the confirmation page; it only renders for the order's
// owner, anyone else sees not found.
func (h *CheckoutHandler) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	userID := helpers.UserIDFromContext(r)
	orderID := mux.Vars(r)["id"]

	order, err := h.orderRepo.GetByIDForUser(r.Context(), orderID, userID)
	if err != nil {
		log.Printf("OrderSuccess: failed to load order %s: %v", orderID, err)
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}
	if order == nil {
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Order Confirmation",
		"Order": order,
	})

	_ = h.render.HTML(w, http.StatusOK, "order_success", data)
}
