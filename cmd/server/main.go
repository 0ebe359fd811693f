package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starter_backend/internal/config"
	"starter_backend/internal/handler"
	"starter_backend/internal/middleware"
	"starter_backend/internal/repository"
	"starter_backend/internal/service"
	"starter_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const appVersion = "1.0.0"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(settings.SecretKey, settings.AccessTokenTTL, settings.RefreshTokenTTL)
	cookieManager := utils.NewCookieManager(settings.CookieSecure, settings.CookieSameSite,
		settings.AccessTokenTTL, settings.RefreshTokenTTL)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	roleRepo := repository.NewRoleRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, roleRepo, jwtUtil)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, cookieManager)
	healthHandler := handler.NewHealthHandler(dbPool, appVersion)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	// For production, configure specific origins, methods, headers
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.Use(middleware.MetricsMiddleware())

	// --- Initialize Middlewares ---
	authMW := middleware.AuthMiddleware(jwtUtil, userRepo)
	adminMW := middleware.AdminOnly()

	// --- Register Routes ---
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome!"})
	})
	router.Static("/static", settings.StaticDir)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler.RegisterAuthRoutes(router.Group(""), authMW, adminMW)
	healthHandler.RegisterHealthRoutes(router)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + settings.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", settings.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
