package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

// StoreAccountHandler covers the owner-facing store management pages that
// live outside any tenant: creating a store and listing the ones you own.
// These paths sit on the custom-domain denylist.
type StoreAccountHandler struct {
	storeRepo repositories.StoreRepository
	render    *render.Render
	validate  *validator.Validate
}

func NewStoreAccountHandler(storeRepo repositories.StoreRepository, render *render.Render) *StoreAccountHandler {
	return &StoreAccountHandler{
		storeRepo: storeRepo,
		render:    render,
		validate:  validator.New(),
	}
}

type StoreForm struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Domain      string `validate:"omitempty,fqdn"`
}

func (h *StoreAccountHandler) MyStores(w http.ResponseWriter, r *http.Request) {
	userID := helpers.UserIDFromContext(r)

	stores, err := h.storeRepo.FindByOwner(r.Context(), userID)
	if err != nil {
		log.Printf("MyStores: failed to load stores for user %s: %v", userID, err)
		http.Error(w, "Failed to load stores", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "My Stores",
		"Stores": stores,
	})

	_ = h.render.HTML(w, http.StatusOK, "my_stores", data)
}

func (h *StoreAccountHandler) CreateStorePage(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Create Store",
	})
	_ = h.render.HTML(w, http.StatusOK, "create_store", data)
}

func (h *StoreAccountHandler) CreateStorePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	form := StoreForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Domain:      r.PostFormValue("domain"),
	}

	if err := h.validate.Struct(&form); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		formatted := helpers.FormatValidationErrors(validationErrors)
		log.Printf("CreateStorePost: validation failed: %+v", formatted)
		helpers.RedirectWithMessage(w, r, "/create-store/", "error", "Please check the form: store name is required.")
		return
	}

	store := &models.Store{
		Name:        form.Name,
		Description: form.Description,
		OwnerID:     helpers.UserIDFromContext(r),
		IsActive:    true,
	}
	if form.Domain != "" {
		store.Domain = &form.Domain
	}

	if err := h.storeRepo.Create(r.Context(), store); err != nil {
		log.Printf("CreateStorePost: failed to create store: %v", err)
		helpers.RedirectWithMessage(w, r, "/create-store/", "error", "Failed to create store. The name or domain may already be taken.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/dashboard/store/"+store.Slug+"/", "success", "Store created successfully!")
}
