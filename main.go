package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/venuehub/backend/internal/config"
	"github.com/venuehub/backend/internal/db"
	"github.com/venuehub/backend/internal/handler"
	"github.com/venuehub/backend/internal/service"
)

// @title venuehub API
// @version 1.0
// @description Venue and event management API with token-based authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Main] no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx)
	if err != nil {
		log.Fatalf("[Main] failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	database := &db.Postgres{Pool: pool}
	if err := database.EnsureAuthSchema(ctx); err != nil {
		log.Fatalf("[Main] failed to ensure auth schema: %v", err)
	}
	if err := database.EnsureVenueSchema(ctx); err != nil {
		log.Fatalf("[Main] failed to ensure venue schema: %v", err)
	}
	if err := database.EnsureEventSchema(ctx); err != nil {
		log.Fatalf("[Main] failed to ensure event schema: %v", err)
	}
	if err := database.EnsureWebhookSchema(ctx); err != nil {
		log.Fatalf("[Main] failed to ensure webhook schema: %v", err)
	}
	if err := database.SeedRoles(ctx, service.RoleUser, service.RoleAdmin); err != nil {
		log.Fatalf("[Main] failed to seed roles: %v", err)
	}

	authService, err := service.NewAuthServiceFromConfig(database, cfg.Auth)
	if err != nil {
		log.Fatalf("[Main] failed to initialize auth service: %v", err)
	}
	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("[Main] failed to ensure admin account: %v", err)
		}
	}

	venueService := service.NewVenueService(database)
	webhookService := service.NewWebhookService(database)
	deliveryService := service.NewWebhookDeliveryService(database, database)
	eventService := service.NewEventService(database, database, deliveryService)
	userAdminService := service.NewUserAdminService(database)

	authHandler := handler.NewAuthHandler(authService)
	venueHandler := handler.NewVenueHandler(venueService)
	eventHandler := handler.NewEventHandler(eventService)
	adminHandler := handler.NewAdminHandler(userAdminService)
	webhookHandler := handler.NewWebhookHandler(webhookService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	// Public auth endpoints.
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/refreshtoken", authHandler.RefreshToken)
	}

	// Any authenticated user can read.
	authed := router.Group("/api", handler.AuthMiddleware(authService))
	{
		authed.POST("/auth/signout", authHandler.Signout)
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/venues", venueHandler.GetVenues)
		authed.GET("/venues/:id", venueHandler.GetVenue)
		authed.GET("/events", eventHandler.GetEvents)
		authed.GET("/events/:id", eventHandler.GetEvent)
	}

	// Mutations and admin endpoints require ROLE_ADMIN.
	admin := router.Group("/api", handler.AuthMiddleware(authService), handler.RequireRole(service.RoleAdmin))
	{
		admin.POST("/venues", venueHandler.CreateVenue)
		admin.PUT("/venues/:id", venueHandler.UpdateVenue)
		admin.DELETE("/venues/:id", venueHandler.DeleteVenue)

		admin.POST("/events", eventHandler.CreateEvent)
		admin.PUT("/events/:id", eventHandler.UpdateEvent)
		admin.DELETE("/events/:id", eventHandler.DeleteEvent)

		admin.GET("/admin/users", adminHandler.GetUsers)
		admin.GET("/admin/users/:id", adminHandler.GetUser)
		admin.PUT("/admin/users/:id/roles", adminHandler.UpdateUserRoles)

		admin.GET("/admin/webhooks", webhookHandler.ListWebhookConfigs)
		admin.GET("/admin/webhooks/:id", webhookHandler.GetWebhookConfig)
		admin.POST("/admin/webhooks", webhookHandler.CreateWebhookConfig)
		admin.PUT("/admin/webhooks/:id", webhookHandler.UpdateWebhookConfig)
		admin.DELETE("/admin/webhooks/:id", webhookHandler.DeleteWebhookConfig)
	}

	log.Printf("[Main] starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[Main] server stopped: %v", err)
	}
}
