package routes

import (
	"log"

	"github.com/satishkumarramakoti33/sb-works/internal/api/handlers"
	"github.com/satishkumarramakoti33/sb-works/internal/api/middleware"
	"github.com/satishkumarramakoti33/sb-works/internal/app"
	"github.com/satishkumarramakoti33/sb-works/internal/services"
	"github.com/satishkumarramakoti33/sb-works/internal/storage/postgres"
	"github.com/satishkumarramakoti33/sb-works/internal/storage/redisstore"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires repositories, services and handlers and registers the
// API surface on the router.
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// Repositories
	userRepo := postgres.NewUserRepo(app.DBPool)
	jobRepo := postgres.NewJobRepo(app.DBPool)
	tokenRepo := redisstore.NewTokenRepo(app.RedisClient)

	// Services
	userService := services.NewUserService(userRepo, tokenRepo,
		app.Config.JWT.Secret, app.Config.JWT.Expiration, app.Config.JWT.RefreshExpiration)
	jobService := services.NewJobService(jobRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, app.Validator)
	jobHandler := handlers.NewJobHandler(jobService, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler, authMiddleware)
	RegisterJobRoutes(apiV1, jobHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
