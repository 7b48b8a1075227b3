package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/satishkumarramakoti33/sb-works/config"
	"github.com/satishkumarramakoti33/sb-works/internal/app"
	"github.com/satishkumarramakoti33/sb-works/internal/database"
	"github.com/satishkumarramakoti33/sb-works/internal/server"

	_ "github.com/satishkumarramakoti33/sb-works/docs" // Generated swagger docs

	"github.com/go-playground/validator/v10"
)

// @title           SB Works API
// @version         1.0
// @description     Freelance marketplace backend: clients post jobs, freelancers apply, clients accept, freelancers deliver.

// @contact.name   API Support
// @contact.email  support@sb-works.example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	validate := validator.New()

	application := &app.Application{
		Config:      cfg,
		DBPool:      dbPool,
		RedisClient: redisClient,
		Validator:   validate,
	}

	srv := server.NewServer(application)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Application gracefully stopped.")
}
