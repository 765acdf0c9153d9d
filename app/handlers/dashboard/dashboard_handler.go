package dashboard

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/unrolled/render"
)

const lowStockThreshold = 10

// DashboardHandler serves the owner-only management views. Every operation
// resolves the target store by slug and owner in one lookup; a store owned by
// someone else and a store that does not exist are both "not found".
type DashboardHandler struct {
	storeRepo    repositories.StoreRepository
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	orderRepo    repositories.OrderRepository
	themeRepo    repositories.ThemeRepository
	render       *render.Render
	validate     *validator.Validate
}

func NewDashboardHandler(
	storeRepo repositories.StoreRepository,
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	orderRepo repositories.OrderRepository,
	themeRepo repositories.ThemeRepository,
	render *render.Render,
) *DashboardHandler {
	return &DashboardHandler{
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		themeRepo:    themeRepo,
		render:       render,
		validate:     validator.New(),
	}
}

// resolveStore is the authorization gate for every dashboard route.
func (h *DashboardHandler) resolveStore(w http.ResponseWriter, r *http.Request) (*models.Store, bool) {
	storeSlug := mux.Vars(r)["slug"]
	userID := helpers.UserIDFromContext(r)

	store, err := h.storeRepo.FindBySlugAndOwner(r.Context(), storeSlug, userID)
	if err != nil {
		log.Printf("resolveStore: lookup failed for slug %q: %v", storeSlug, err)
		http.Error(w, "Failed to load store", http.StatusInternalServerError)
		return nil, false
	}
	if store == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return store, true
}

func (h *DashboardHandler) basePath(store *models.Store) string {
	return "/dashboard/store/" + store.Slug
}

// Home shows the store's headline numbers and the lists an owner checks
// first: recent orders and products running low.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	store, ok := h.resolveStore(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	totalOrders, err := h.orderRepo.CountByStore(ctx, store.ID)
	if err != nil {
		log.Printf("Dashboard.Home: failed to count orders: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	totalRevenue, err := h.orderRepo.SumTotalByStore(ctx, store.ID)
	if err != nil {
		log.Printf("Dashboard.Home: failed to sum revenue: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	totalProducts, err := h.productRepo.CountByStore(ctx, store.ID)
	if err != nil {
		log.Printf("Dashboard.Home: failed to count products: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	pendingOrders, err := h.orderRepo.CountByStoreAndStatus(ctx, store.ID, models.OrderStatusPending)
	if err != nil {
		log.Printf("Dashboard.Home: failed to count pending orders: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	recentOrders, err := h.orderRepo.GetRecentByStore(ctx, store.ID, 10)
	if err != nil {
		log.Printf("Dashboard.Home: failed to load recent orders: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	lowStock, err := h.productRepo.GetLowStockByStore(ctx, store.ID, lowStockThreshold, 5)
	if err != nil {
		log.Printf("Dashboard.Home: failed to load low stock products: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":            store.Name + " - Dashboard",
		"Store":            store,
		"TotalOrders":      totalOrders,
		"TotalRevenue":     totalRevenue,
		"TotalProducts":    totalProducts,
		"PendingOrders":    pendingOrders,
		"RecentOrders":     recentOrders,
		"LowStockProducts": lowStock,
	})

	_ = h.render.HTML(w, http.StatusOK, "dashboard/home", data)
}
