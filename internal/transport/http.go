package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	handler "github.com/vasiliy-maslov/storefront/internal/handler/http"
	"github.com/vasiliy-maslov/storefront/internal/identity"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/profile"
)

// NewRouter assembles repositories, services and handlers over the shared
// pool and returns the ready chi router.
func NewRouter(dbPool *pgxpool.Pool, adminPrincipals []string) *chi.Mux {
	catalogRepo := catalog.NewRepository(dbPool)
	catalogSvc := catalog.NewService(catalogRepo)

	cartRepo := cart.NewRepository(dbPool)
	cartSvc := cart.NewService(cartRepo, catalogSvc)

	orderRepo := order.NewRepository(dbPool)
	orderSvc := order.NewService(orderRepo)

	checkoutSvc := checkout.NewService(cartSvc, catalogSvc, orderSvc)

	identityRepo := identity.NewRepository(dbPool)
	identitySvc := identity.NewService(identityRepo, adminPrincipals)

	profileRepo := profile.NewRepository(dbPool)
	profileSvc := profile.NewService(profileRepo)

	productHandler := handler.NewProductHandler(catalogSvc)
	cartHandler := handler.NewCartHandler(cartSvc, checkoutSvc)
	orderHandler := handler.NewOrderHandler(checkoutSvc, orderSvc, identitySvc)
	identityHandler := handler.NewIdentityHandler(identitySvc, profileSvc)

	adminOnly := requireAdmin(identitySvc)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(identity.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.HandleListProducts)
		r.Get("/{id}", productHandler.HandleGetProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, adminOnly)
			r.Post("/", productHandler.HandleCreateProduct)
			r.Put("/{id}", productHandler.HandleUpdateProduct)
			r.Delete("/{id}", productHandler.HandleDeleteProduct)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", cartHandler.HandleGetCart)
		r.Post("/items", cartHandler.HandleAddItem)
		r.Patch("/items", cartHandler.HandleChangeQuantity)
		r.Delete("/items/{productID}/{size}", cartHandler.HandleRemoveItem)
		r.Delete("/", cartHandler.HandleClearCart)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", orderHandler.HandlePlaceOrder)
		r.Get("/", orderHandler.HandleListOrders)
		r.Get("/{id}", orderHandler.HandleGetOrder)
	})

	r.Route("/me", func(r chi.Router) {
		r.Get("/role", identityHandler.HandleGetRole)
		r.Get("/admin", identityHandler.HandleIsAdmin)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/profile", identityHandler.HandleGetProfile)
			r.Put("/profile", identityHandler.HandleSaveProfile)
		})
	})

	r.With(requireAuth, adminOnly).Post("/roles", identityHandler.HandleAssignRole)
	r.With(requireAuth, adminOnly).Get("/profiles/{principal}", identityHandler.HandleGetProfileByPrincipal)

	return r
}
