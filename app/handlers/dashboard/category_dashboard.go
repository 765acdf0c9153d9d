package dashboard

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
)

func (h *DashboardHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	listPath := h.basePath(store) + "/products/"

	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding category: could not read form.")
		return
	}

	name := r.PostFormValue("name")
	if name == "" {
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding category: name is required.")
		return
	}

	category := &models.Category{
		Name:    name,
		StoreID: store.ID,
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("Dashboard.AddCategory: failed to create category: %v", err)
		helpers.RedirectWithMessage(w, r, listPath, "error", "Error adding category: could not save.")
		return
	}

	helpers.RedirectWithMessage(w, r, listPath, "success", fmt.Sprintf("Category %q added successfully!", name))
}
