package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/middlewares"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

// StoreHandler serves the public storefront pages of a resolved tenant.
type StoreHandler struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	themeRepo    repositories.ThemeRepository
	render       *render.Render
}

func NewStoreHandler(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, themeRepo repositories.ThemeRepository, render *render.Render) *StoreHandler {
	return &StoreHandler{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		themeRepo:    themeRepo,
		render:       render,
	}
}

func (h *StoreHandler) StoreHome(w http.ResponseWriter, r *http.Request) {
	store := middlewares.StoreFromContext(r)
	if store == nil {
		http.NotFound(w, r)
		return
	}

	theme, err := h.themeRepo.GetOrCreateByStore(r.Context(), store)
	if err != nil {
		log.Printf("StoreHome: failed to load theme for store %s: %v", store.ID, err)
		http.Error(w, "Failed to load store", http.StatusInternalServerError)
		return
	}

	products, err := h.productRepo.GetAvailableByStore(r.Context(), store.ID, "", "")
	if err != nil {
		log.Printf("StoreHome: failed to load products for store %s: %v", store.ID, err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":          store.Name,
		"Store":          store,
		"Theme":          theme,
		"Products":       products,
		"IsCustomDomain": middlewares.IsCustomDomain(r),
	})

	_ = h.render.HTML(w, http.StatusOK, "store_home", data)
}

// Products lists a store's available products, optionally filtered by
// category slug and a name search query.
func (h *StoreHandler) Products(w http.ResponseWriter, r *http.Request) {
	store := middlewares.StoreFromContext(r)
	if store == nil {
		http.NotFound(w, r)
		return
	}

	categorySlug := r.URL.Query().Get("category")
	searchQuery := r.URL.Query().Get("search")

	products, err := h.productRepo.GetAvailableByStore(r.Context(), store.ID, categorySlug, searchQuery)
	if err != nil {
		log.Printf("Products: failed to load products for store %s: %v", store.ID, err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	categories, err := h.categoryRepo.GetByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("Products: failed to load categories for store %s: %v", store.ID, err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":           store.Name + " - Products",
		"Store":           store,
		"Products":        products,
		"Categories":      categories,
		"CurrentCategory": categorySlug,
		"SearchQuery":     searchQuery,
	})

	_ = h.render.HTML(w, http.StatusOK, "product_list", data)
}

func (h *StoreHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	store := middlewares.StoreFromContext(r)
	if store == nil {
		http.NotFound(w, r)
		return
	}

	productSlug := mux.Vars(r)["productSlug"]
	product, err := h.productRepo.GetByStoreAndSlug(r.Context(), store.ID, productSlug)
	if err != nil {
		log.Printf("ProductDetail: failed to load product %s: %v", productSlug, err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil || !product.Available {
		http.NotFound(w, r)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":   product.Name,
		"Store":   store,
		"Product": product,
	})

	_ = h.render.HTML(w, http.StatusOK, "product_detail", data)
}
