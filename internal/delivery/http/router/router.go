// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"backoffice/internal/delivery/http/middleware"
	"backoffice/internal/delivery/http/router/handler"
	"backoffice/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CustomerHandler *handler.CustomerHandler
	ProductHandler  *handler.ProductHandler
	SupplierHandler *handler.SupplierHandler
	SaleHandler     *handler.SaleHandler
	HealthHandler   *handler.HealthHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", r.params.HealthHandler.Check)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
		// Logout is deliberately unauthenticated: the handler revokes
		// whatever bearer token is presented, valid or not.
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
	}

	// User management is admin-only, except for the self-service routes.
	userGroup := e.Group("/users")
	userGroup.Use(auth.Authenticate)
	{
		userGroup.GET("/me", r.params.UserHandler.Me)
		userGroup.PUT("/me/profile", r.params.UserHandler.UpdateProfile)
		userGroup.PUT("/me/password", r.params.AuthHandler.ChangePassword)

		adminOnly := auth.RequireRole(entity.RoleAdmin)
		userGroup.GET("", r.params.UserHandler.List, adminOnly)
		userGroup.POST("", r.params.UserHandler.Create, adminOnly)
		userGroup.GET("/:id", r.params.UserHandler.Get, adminOnly)
		userGroup.PUT("/:id", r.params.UserHandler.Update, adminOnly)
		userGroup.PUT("/deactivate/:id", r.params.UserHandler.Deactivate, adminOnly)
		userGroup.PUT("/activate/:id", r.params.UserHandler.Activate, adminOnly)
		userGroup.PUT("/unlock/:id", r.params.UserHandler.Unlock, adminOnly)
	}

	readAccess := auth.RequirePermissions(entity.PermissionRead)
	writeAccess := auth.RequirePermissions(entity.PermissionWrite)
	deleteAccess := auth.RequirePermissions(entity.PermissionDelete)

	customerGroup := e.Group("/customers")
	customerGroup.Use(auth.Authenticate)
	{
		customerGroup.GET("", r.params.CustomerHandler.List, readAccess)
		customerGroup.GET("/search", r.params.CustomerHandler.Search, readAccess)
		customerGroup.GET("/:id", r.params.CustomerHandler.Get, readAccess)
		customerGroup.POST("", r.params.CustomerHandler.Create, writeAccess)
		customerGroup.PUT("/:id", r.params.CustomerHandler.Update, writeAccess)
		customerGroup.PUT("/deactivate/:id", r.params.CustomerHandler.Deactivate, deleteAccess)
		customerGroup.PUT("/activate/:id", r.params.CustomerHandler.Activate, writeAccess)
	}

	productGroup := e.Group("/products")
	productGroup.Use(auth.Authenticate)
	{
		productGroup.GET("", r.params.ProductHandler.List, readAccess)
		productGroup.GET("/search", r.params.ProductHandler.Search, readAccess)
		productGroup.GET("/low-stock", r.params.ProductHandler.LowStock, readAccess)
		productGroup.GET("/sku/:sku", r.params.ProductHandler.GetBySKU, readAccess)
		productGroup.GET("/barcode/:barcode", r.params.ProductHandler.GetByBarcode, readAccess)
		productGroup.GET("/:id", r.params.ProductHandler.Get, readAccess)
		productGroup.POST("", r.params.ProductHandler.Create, writeAccess)
		productGroup.PUT("/:id", r.params.ProductHandler.Update, writeAccess)
		productGroup.PUT("/stock/:id", r.params.ProductHandler.AdjustStock, writeAccess)
		productGroup.PUT("/deactivate/:id", r.params.ProductHandler.Deactivate, deleteAccess)
		productGroup.PUT("/activate/:id", r.params.ProductHandler.Activate, writeAccess)
	}

	supplierGroup := e.Group("/suppliers")
	supplierGroup.Use(auth.Authenticate)
	{
		supplierGroup.GET("", r.params.SupplierHandler.List, readAccess)
		supplierGroup.GET("/search", r.params.SupplierHandler.Search, readAccess)
		supplierGroup.GET("/:id", r.params.SupplierHandler.Get, readAccess)
		supplierGroup.POST("", r.params.SupplierHandler.Create, writeAccess)
		supplierGroup.PUT("/:id", r.params.SupplierHandler.Update, writeAccess)
		supplierGroup.PUT("/deactivate/:id", r.params.SupplierHandler.Deactivate, deleteAccess)
		supplierGroup.PUT("/activate/:id", r.params.SupplierHandler.Activate, writeAccess)
	}

	saleGroup := e.Group("/sales")
	saleGroup.Use(auth.Authenticate)
	{
		saleGroup.GET("", r.params.SaleHandler.List, readAccess)
		saleGroup.GET("/number/:number", r.params.SaleHandler.GetByNumber, readAccess)
		saleGroup.GET("/customer/:customer_id", r.params.SaleHandler.ByCustomer, readAccess)
		saleGroup.GET("/cashier/:cashier_id", r.params.SaleHandler.ByCashier, readAccess)
		saleGroup.GET("/reports/daily", r.params.SaleHandler.DailyReport, readAccess)
		saleGroup.GET("/reports/top-products", r.params.SaleHandler.TopProducts, readAccess)
		saleGroup.GET("/:id", r.params.SaleHandler.Get, readAccess)
		saleGroup.POST("", r.params.SaleHandler.Create, writeAccess)
		saleGroup.PUT("/cancel/:id", r.params.SaleHandler.Cancel, writeAccess)
		saleGroup.PUT("/:id", r.params.SaleHandler.Update, writeAccess)

		// Verb-style aliases kept for clients of the previous API
		// generation.
		saleGroup.POST("/sale/create", r.params.SaleHandler.Create, writeAccess)
		saleGroup.PUT("/sale/update/:id", r.params.SaleHandler.Update, writeAccess)
		saleGroup.PUT("/sale/cancel/:id", r.params.SaleHandler.Cancel, writeAccess)
	}
}
