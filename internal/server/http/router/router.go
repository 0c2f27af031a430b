package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/notify"
	"github.com/smartkart/smartkart/internal/server/http/handlers"
	"github.com/smartkart/smartkart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, registry *notify.Registry, checker handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/ws"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	groupHandler := handlers.NewGroupHandler(facade)
	supplierHandler := handlers.NewSupplierHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	wsHandler := handlers.NewWSHandler(registry, logger)
	healthHandler := handlers.NewHealthHandler(checker)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/ws", wsHandler.Serve)

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id", orderHandler.Update)
	orders.POST("/:id/decision", middleware.RoleRequired(model.RoleSupplier), orderHandler.Decide)
	orders.POST("/:id/progress", middleware.RoleRequired(model.RoleSupplier), orderHandler.Progress)
	orders.POST("/:id/delivery", middleware.RoleRequired(model.RoleVendor), orderHandler.ScheduleDelivery)

	groups := authed.Group("/groups")
	groups.POST("", middleware.RoleRequired(model.RoleVendor), groupHandler.Create)
	groups.GET("", groupHandler.List)
	groups.GET("/:id", groupHandler.Get)

	suppliers := authed.Group("/suppliers")
	suppliers.GET("/nearby", supplierHandler.Nearby)
	suppliers.GET("/dashboard", middleware.RoleRequired(model.RoleSupplier), supplierHandler.Dashboard)
	suppliers.POST("/:id/rating", middleware.RoleRequired(model.RoleVendor), supplierHandler.Rate)

	payments := authed.Group("/payments")
	payments.POST("/orders/:id/link", paymentHandler.Link)
	payments.POST("/orders/:id/confirm", paymentHandler.Confirm)
	payments.GET("/orders/:id", paymentHandler.Status)
	payments.GET("/history", paymentHandler.History)

	return engine
}
