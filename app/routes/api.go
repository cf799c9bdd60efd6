// Package routes wires controllers onto the router.
package routes

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/controllers"
	"github.com/aldeanavidad/tienda/app/repositories"
	"github.com/aldeanavidad/tienda/app/services"
	"github.com/aldeanavidad/tienda/pkg/metrics"
	"github.com/aldeanavidad/tienda/pkg/middleware"
	"github.com/aldeanavidad/tienda/pkg/rbac"
	"github.com/aldeanavidad/tienda/pkg/router"
	"github.com/aldeanavidad/tienda/pkg/ws"
)

// Register builds the whole API route tree on r. hub may be nil in
// tests; the live feed route is skipped then.
func Register(r *router.Router, db *gorm.DB, hub *ws.Hub) {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	offers := repositories.NewOfferRepository(db)
	orders := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(users)
	catalogSvc := services.NewCatalogService(products, offers)
	orderSvc := services.NewOrderService(orders)

	authCtl := controllers.NewAuthController(authSvc)
	productCtl := controllers.NewProductController(catalogSvc)
	offerCtl := controllers.NewOfferController(catalogSvc)
	orderCtl := controllers.NewOrderController(orderSvc)
	healthCtl := controllers.NewHealthController(db)

	api := r.Group("/api")

	// Probes
	api.Get("/health", "health", healthCtl.Health)
	api.Get("/db-check", "db.check", healthCtl.DBCheck)

	// Auth
	api.Post("/auth/login", "auth.login", authCtl.Login,
		middleware.RateLimit(10, time.Minute))
	api.Get("/auth/me", "auth.me", authCtl.Me, middleware.Auth)

	// Public catalog
	api.Get("/productos", "productos.index", productCtl.Index)
	api.Get("/ofertas", "ofertas.index", offerCtl.Index)

	// Public checkout, rate limited per IP
	api.Post("/pedidos/publico", "pedidos.publico", orderCtl.StorePublic,
		middleware.RateLimit(20, time.Minute))

	// Admin panel
	admin := api.Group("", middleware.Auth, rbac.HasRole("admin"))
	admin.Get("/admin/productos", "admin.productos.index", productCtl.AdminIndex)
	admin.Post("/productos", "productos.store", productCtl.Store)
	admin.Patch("/productos/{id}/stock", "productos.stock", productCtl.UpdateStock)
	admin.Delete("/productos/{id}", "productos.destroy", productCtl.Destroy)

	admin.Get("/admin/ofertas", "admin.ofertas.index", offerCtl.AdminIndex)
	admin.Post("/ofertas", "ofertas.store", offerCtl.Store)

	admin.Post("/pedidos", "pedidos.store", orderCtl.StoreAdmin)
	admin.Get("/admin/pedidos", "admin.pedidos.index", orderCtl.Index)
	admin.Patch("/pedidos/{id}/estado", "pedidos.estado", orderCtl.UpdateStatus)

	// Prometheus scrape endpoint
	api.Get("/metrics", "metrics", metrics.Handler())

	// Admin live order feed
	if hub != nil {
		r.Get("/ws/admin/pedidos", "ws.pedidos",
			func(w http.ResponseWriter, r *http.Request) {
				ws.Upgrade(w, r, hub)
			},
			middleware.Auth, rbac.HasRole("admin"))
	}
}
