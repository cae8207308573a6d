package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/cache"
	"github.com/heavymachinery/backend/controllers"
	"github.com/heavymachinery/backend/database"
	"github.com/heavymachinery/backend/middleware"
	"github.com/heavymachinery/backend/repository"
	"github.com/heavymachinery/backend/routes"
	"github.com/heavymachinery/backend/services"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal("Index creation failed", zap.Error(err))
	}

	// --- Cache ---
	redisClient := cache.NewClient(cfg.RedisURL)
	kv := cache.NewRedisKV(redisClient)

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.RequestLogger(logger))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	chatRepo := repository.NewChatRepository(db)

	tokens := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokens)
	catalogService := services.NewCatalogService(productRepo, offerRepo, kv)
	orderService := services.NewOrderService(
		productRepo, orderRepo, userRepo,
		services.NewPaymentProcessor(), services.NewShipmentCreator(),
	)
	userService := services.NewUserService(userRepo, productRepo)
	adminService := services.NewAdminService(orderRepo, productRepo)

	var completer services.Completer
	if cfg.ChatAPIKey != "" {
		completer = services.NewCompletionClient(cfg.ChatAPIKey, cfg.ChatAPIBase)
	} else {
		logger.Warn("CHAT_API_KEY not set, chat inquiries will be rejected")
	}
	chatService := services.NewChatService(kv, completer, chatRepo, cfg.ChatModel)

	routes.RegisterRoutes(r, &routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Product: controllers.NewProductController(catalogService),
		Offer:   controllers.NewOfferController(catalogService),
		Order:   controllers.NewOrderController(orderService),
		Chat:    controllers.NewChatController(chatService),
		Support: controllers.NewSupportController(faqRepo, feedbackRepo),
		User:    controllers.NewUserController(userService),
		Admin:   controllers.NewAdminController(adminService, userService),
	}, tokens, cfg.AllowedOrigins)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		logger.Error("Mongo disconnect error", zap.Error(err))
	}

	logger.Info("Backend stopped gracefully")
}
