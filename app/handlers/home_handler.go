package handlers

import (
	"log"
	"net/http"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	storeRepo repositories.StoreRepository
	render    *render.Render
}

func NewHomeHandler(storeRepo repositories.StoreRepository, render *render.Render) *HomeHandler {
	return &HomeHandler{storeRepo: storeRepo, render: render}
}

// Home is the platform landing page listing active stores.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	stores, err := h.storeRepo.GetActiveStores(r.Context())
	if err != nil {
		log.Printf("Home: failed to list stores: %v", err)
		http.Error(w, "Failed to load stores", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "Storefront",
		"Stores": stores,
	})

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}
