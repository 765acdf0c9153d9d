package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/services"
	"github.com/rahmatd/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartService  *services.CartService
	sessionStore sessions.Store
	render       *render.Render
}

func NewCartHandler(cartService *services.CartService, sessionStore sessions.Store, render *render.Render) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		sessionStore: sessionStore,
		render:       render,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.sessionStore.GetCart(r)

	view, err := h.cartService.View(r.Context(), cart)
	if err != nil {
		log.Printf("GetCart: failed to build cart view: %v", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Shopping Cart",
		"CartItems": view.Items,
		"Total":     view.Total,
	})

	_ = h.render.HTML(w, http.StatusOK, "cart", data)
}

func (h *CartHandler) AddItemCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		helpers.RedirectWithMessage(w, r, "/carts", "error", "Missing product id.")
		return
	}

	cart := h.sessionStore.GetCart(r)
	cart, product, err := h.cartService.AddItem(r.Context(), cart, productID)
	if err != nil {
		log.Printf("AddItemCart: %v", err)
		helpers.RedirectWithMessage(w, r, "/carts", "error", "Product not found.")
		return
	}

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("AddItemCart: failed to save cart session: %v", err)
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	returnTo := r.FormValue("return_to")
	if returnTo == "" {
		returnTo = "/carts"
	}
	helpers.RedirectWithMessage(w, r, returnTo, "success", fmt.Sprintf("%s added to cart!", product.Name))
}

func (h *CartHandler) UpdateItemCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("product_id")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if productID == "" || err != nil {
		helpers.RedirectWithMessage(w, r, "/carts", "error", "Invalid product or quantity.")
		return
	}

	cart := h.sessionStore.GetCart(r)
	removed := qty <= 0
	cart = h.cartService.UpdateQty(cart, productID, qty)

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("UpdateItemCart: failed to save cart session: %v", err)
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	if removed {
		helpers.RedirectWithMessage(w, r, "/carts", "success", "Item removed from cart!")
		return
	}
	helpers.RedirectWithMessage(w, r, "/carts", "success", "Cart updated!")
}

func (h *CartHandler) RemoveItemCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("product_id")
	cart := h.sessionStore.GetCart(r)
	cart = h.cartService.RemoveItem(cart, productID)

	if err := h.sessionStore.SaveCart(w, r, cart); err != nil {
		log.Printf("RemoveItemCart: failed to save cart session: %v", err)
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	helpers.RedirectWithMessage(w, r, "/carts", "success", "Item removed from cart!")
}
