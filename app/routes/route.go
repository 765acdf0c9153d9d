package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rahmatd/go-storefront/app/configs"
	"github.com/rahmatd/go-storefront/app/handlers"
	"github.com/rahmatd/go-storefront/app/handlers/dashboard"
	"github.com/rahmatd/go-storefront/app/middlewares"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/rahmatd/go-storefront/app/services"
	"github.com/rahmatd/go-storefront/app/utils/renderer"
	"github.com/rahmatd/go-storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, sessionKeys *configs.SessionKeys) http.Handler {
	storeRepo := repositories.NewStoreRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	themeRepo := repositories.NewThemeRepository(db)
	userRepo := repositories.NewUserRepository(db)

	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)
	render := renderer.New()

	cartService := services.NewCartService(productRepo)
	checkoutService := services.NewCheckoutService(db, productRepo, orderRepo, orderItemRepo)

	homeHandler := handlers.NewHomeHandler(storeRepo, render)
	storeHandler := handlers.NewStoreHandler(productRepo, categoryRepo, themeRepo, render)
	cartHandler := handlers.NewCartHandler(cartService, sessionStore, render)
	checkoutHandler := handlers.NewCheckoutHandler(cartService, checkoutService, orderRepo, sessionStore, render)
	orderHandler := handlers.NewOrderHandler(orderRepo, render)
	authHandler := handlers.NewAuthHandler(userRepo, sessionStore, render)
	storeAccountHandler := handlers.NewStoreAccountHandler(storeRepo, render)
	dashboardHandler := dashboard.NewDashboardHandler(storeRepo, productRepo, categoryRepo, orderRepo, themeRepo, render)

	router := mux.NewRouter().StrictSlash(true)

	router.Use(middlewares.CurrentUser(sessionStore, userRepo))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET", "POST")

	// Public storefront, tenant-scoped by slug path.
	store := router.PathPrefix("/store/{slug}").Subrouter()
	store.HandleFunc("/", storeHandler.StoreHome).Methods("GET")
	store.HandleFunc("/products/", storeHandler.Products).Methods("GET")
	store.HandleFunc("/products/{productSlug}/", storeHandler.ProductDetail).Methods("GET")

	router.HandleFunc("/carts", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/carts/add", cartHandler.AddItemCart).Methods("POST")
	router.HandleFunc("/carts/update", cartHandler.UpdateItemCart).Methods("POST")
	router.HandleFunc("/carts/remove", cartHandler.RemoveItemCart).Methods("POST")

	checkout := router.PathPrefix("/checkout").Subrouter()
	checkout.Use(middlewares.RequireLogin)
	checkout.HandleFunc("", checkoutHandler.CheckoutPage).Methods("GET")
	checkout.HandleFunc("", checkoutHandler.ProcessCheckout).Methods("POST")

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(middlewares.RequireLogin)
	orders.HandleFunc("", orderHandler.MyOrders).Methods("GET")
	orders.HandleFunc("/success/{id}", checkoutHandler.OrderSuccess).Methods("GET")

	account := router.NewRoute().Subrouter()
	account.Use(middlewares.RequireLogin)
	account.HandleFunc("/my-stores/", storeAccountHandler.MyStores).Methods("GET")
	account.HandleFunc("/create-store/", storeAccountHandler.CreateStorePage).Methods("GET")
	account.HandleFunc("/create-store/", storeAccountHandler.CreateStorePost).Methods("POST")

	// Owner dashboard; unreachable on custom domains via the denylist.
	dash := router.PathPrefix("/dashboard/store/{slug}").Subrouter()
	dash.Use(middlewares.RequireLogin)
	dash.HandleFunc("/", dashboardHandler.Home).Methods("GET")
	dash.HandleFunc("/products/", dashboardHandler.Products).Methods("GET")
	dash.HandleFunc("/products/add/", dashboardHandler.AddProduct).Methods("POST")
	dash.HandleFunc("/products/edit/{productID}/", dashboardHandler.EditProduct).Methods("POST")
	dash.HandleFunc("/products/delete/{productID}/", dashboardHandler.DeleteProduct).Methods("POST")
	dash.HandleFunc("/category/add/", dashboardHandler.AddCategory).Methods("POST")
	dash.HandleFunc("/orders/", dashboardHandler.Orders).Methods("GET")
	dash.HandleFunc("/orders/{orderID}/", dashboardHandler.OrderDetail).Methods("GET")
	dash.HandleFunc("/orders/{orderID}/update/", dashboardHandler.UpdateOrderStatus).Methods("POST")
	dash.HandleFunc("/customize/", dashboardHandler.Customize).Methods("GET")
	dash.HandleFunc("/customize/", dashboardHandler.CustomizePost).Methods("POST")

	csrfMiddleware := csrf.Protect(
		sessionKeys.AuthKey,
		csrf.Secure(env.AppEnv == "production"),
		csrf.Path("/"),
	)

	// Tenant resolution wraps the router itself, not a mux.Use chain: the
	// custom-domain denylist must fire even for paths with no registered
	// route, and mux only runs Use middleware on matched routes.
	tenantMiddleware := middlewares.TenantResolver(storeRepo)

	return csrfMiddleware(tenantMiddleware(router))
}
