package dashboard

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

type ProductForm struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"required"`
	Price       string `validate:"required"`
	Stock       string `validate:"required"`
	CategoryID  string `validate:"required"`
}

func productFormFromRequest(r *http.Request) ProductForm {
	return ProductForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Stock:       r.PostFormValue("stock"),
		CategoryID:  r.PostFormValue("category"),
	}
}

func (h *DashboardHandler) Products(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}

	searchQuery := r.URL.Query().Get("search")
	categoryFilter := r.URL.Query().Get("category")

	products, err := h.productRepo.SearchByStore(r.Context(), store.ID, searchQuery, categoryFilter)
	if err != nil {
		log.Printf("Dashboard.Products: failed to load products: %v", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	categories, err := h.categoryRepo.GetByStore(r.Context(), store.ID)
	if err != nil {
		log.Printf("Dashboard.Products: failed to load categories: %v", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       store.Name + " - Products",
		"Store":       store,
		"Products":    products,
		"Categories":  categories,
		"SearchQuery": searchQuery,
	})

	_ = h.render.HTML(w, http.StatusOK, "dashboard/products", data)
}

// AddProduct creates a product in the store. Malformed input surfaces as a
// flash message and redirects back to the listing; nothing is written.
func (h *DashboardHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	listPath := h.basePath(store) + "/products/"

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: could not read form.")
		return
	}

	form := productFormFromRequest(r)
	if err := h.validate.Struct(&form); err != nil {
		formatted := helpers.FormatValidationErrors(err.(validator.ValidationErrors))
		log.Printf("Dashboard.AddProduct: validation failed: %+v", formatted)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: all fields are required.")
		return
	}

	// The category must belong to this store; a category id from another
	// tenant is indistinguishable from a missing one.
	category, err := h.categoryRepo.GetByIDAndStore(r.Context(), form.CategoryID, store.ID)
	if err != nil {
		log.Printf("Dashboard.AddProduct: category lookup failed: %v", err)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: failed to resolve category.")
		return
	}
	if category == nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: category not found.")
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: invalid price format.")
		return
	}

	stock, err := strconv.Atoi(form.Stock)
	if err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: invalid stock format.")
		return
	}

	product := &models.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
		CategoryID:  category.ID,
		StoreID:     store.ID,
		Available:   r.PostFormValue("available") == "on",
		ImagePath:   r.PostFormValue("image_path"),
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("Dashboard.AddProduct: failed to create product: %v", err)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding product: could not save.")
		return
	}

	helpers.RedirectWithMessage(w, r, listPath, "success", "Product added successfully!")
}

func (h *DashboardHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	listPath := h.basePath(store) + "/products/"

	productID := mux.Vars(r)["productID"]
	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("Dashboard.EditProduct: product lookup failed: %v", err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil || product.StoreID != store.ID {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: could not read form.")
		return
	}

	form := productFormFromRequest(r)

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: invalid price format.")
		return
	}

	stock, err := strconv.Atoi(form.Stock)
	if err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: invalid stock format.")
		return
	}

	if form.CategoryID != "" {
		category, err := h.categoryRepo.GetByIDAndStore(r.Context(), form.CategoryID, store.ID)
		if err != nil {
			log.Printf("Dashboard.EditProduct: category lookup failed: %v", err)
			helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: failed to resolve category.")
			return
		}
		if category == nil {
			helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: category not found.")
			return
		}
		product.CategoryID = category.ID
	}

	product.Name = form.Name
	product.Description = form.Description
	product.Price = price
	product.Stock = stock
	product.Available = r.PostFormValue("available") == "on"
	if imagePath := r.PostFormValue("image_path"); imagePath != "" {
		product.ImagePath = imagePath
	}

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("Dashboard.EditProduct: failed to update product: %v", err)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error updating product: could not save.")
		return
	}

	helpers.RedirectWithMessage(w, r, listPath, "success", "Product updated successfully!")
}

func (h *DashboardHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	listPath := h.basePath(store) + "/products/"

	productID := mux.Vars(r)["productID"]
	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil {
		log.Printf("Dashboard.DeleteProduct: product lookup failed: %v", err)
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	if product == nil || product.StoreID != store.ID {
		http.NotFound(w, r)
		return
	}

	if err := h.productRepo.Delete(r.Context(), product.ID); err != nil {
		log.Printf("Dashboard.DeleteProduct: failed to delete product: %v", err)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error deleting product.")
		return
	}

	helpers.RedirectWithMessage(w, r, listPath, "success", "Product deleted successfully!")
}
