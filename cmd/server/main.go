package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"order_manager/internal/cache"
	"order_manager/internal/config"
	"order_manager/internal/database"
	"order_manager/internal/handlers"
	"order_manager/internal/repository"
	"order_manager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis-backed list cache
	listCache, err := cache.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repository, service and handler
	orderRepo := repository.NewOrderRepository(db)
	orderService := services.NewOrderService(orderRepo, listCache, time.Duration(cfg.CacheTTL)*time.Second)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup routes
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	orderHandler.RegisterRoutes(router)

	// In production the server also hosts the built client bundle and falls
	// back to its entry file so client-side routing works on deep links.
	if cfg.IsProduction() {
		router.NoRoute(spaFallback(cfg.StaticDir))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: server shutdown error: %v", err)
	}
	if err := listCache.Close(); err != nil {
		log.Printf("Warning: failed to close Redis connection: %v", err)
	}
	if err := database.Close(db); err != nil {
		log.Printf("Warning: failed to close database connection: %v", err)
	}
	log.Println("Server stopped")
}

func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/orders") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
