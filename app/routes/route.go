package routes

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/handlers"
	"github.com/Rakhulsr/go-ecommerce-api/app/handlers/admin"
	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/middlewares"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/sessions"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Options carries what the router needs beyond the database. Tokens and
// Sessions are required.
type Options struct {
	Tokens                 *sessions.TokenCodec
	Sessions               sessions.SessionStore
	Notifier               services.OrderNotifier
	Debug                  bool
	AllowAdminRegistration bool
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func NewRouter(db *gorm.DB, opts Options) *mux.Router {
	router := mux.NewRouter()

	rnd := renderer.New(opts.Debug)
	validate := helpers.NewValidator()

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	authService := services.NewAuthService(userRepo, opts.Tokens, opts.AllowAdminRegistration)
	orderService := services.NewOrderService(db, productRepo, userRepo, orderRepo, orderItemRepo, opts.Notifier)
	reviewService := services.NewReviewService(db, productRepo, orderItemRepo, reviewRepo)

	homeHandler := handlers.NewHomeHandler(rnd, gormPinger{db})
	authHandler := handlers.NewAuthHandler(rnd, authService, opts.Sessions, validate)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, rnd)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, rnd)
	orderHandler := handlers.NewOrderHandler(rnd, orderService, validate)
	reviewHandler := handlers.NewReviewHandler(rnd, reviewService)
	adminHandler := admin.NewAdminHandler(rnd, orderService)

	router.Use(
		middlewares.Recoverer(rnd),
		middlewares.RequestLogger,
		middlewares.Authenticate(opts.Tokens, opts.Sessions, userRepo, rnd),
	)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.Error(w, apperror.NotFound("Route not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"error": "Method not allowed",
			"code":  http.StatusMethodNotAllowed,
		})
	})

	signedIn := middlewares.RequireUser(rnd, apperror.KindUnauthorized)
	signedInOrForbidden := middlewares.RequireUser(rnd, apperror.KindForbidden)
	adminOnly := middlewares.RequireRole(rnd, models.RoleAdmin)

	router.HandleFunc("/", homeHandler.Home).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/products", productHandler.Products).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	api.HandleFunc("/categories", categoryHandler.Categories).Methods("GET")
	api.HandleFunc("/categories/{id}", categoryHandler.CategoryDetail).Methods("GET")

	api.Handle("/orders", signedIn(http.HandlerFunc(orderHandler.CreateOrder))).Methods("POST")
	api.Handle("/orders", signedIn(http.HandlerFunc(orderHandler.ListOrders))).Methods("GET")
	api.Handle("/orders/{id}", signedIn(http.HandlerFunc(orderHandler.GetOrder))).Methods("GET")
	api.Handle("/orders/{id}/cancel", signedInOrForbidden(http.HandlerFunc(orderHandler.CancelOrder))).Methods("PATCH")

	api.Handle("/admin/orders", adminOnly(http.HandlerFunc(adminHandler.GetOrders))).Methods("GET")
	api.Handle("/admin/orders/{id}/status", adminOnly(http.HandlerFunc(adminHandler.UpdateOrderStatus))).Methods("PATCH")

	api.Handle("/review/create", signedIn(http.HandlerFunc(reviewHandler.CreateReview))).Methods("POST")

	return router
}
