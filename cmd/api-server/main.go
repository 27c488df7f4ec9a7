package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"foodgram/database"
	"foodgram/internal/api/handler"
	"foodgram/internal/api/middleware"
	"foodgram/internal/api/repository"
	"foodgram/internal/api/service"
	"foodgram/internal/api/validation"
	"foodgram/internal/config"
	"foodgram/internal/shortlink"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	return redis.NewClient(opts), nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		logger.Error("redis setup failed", "error", err)
		os.Exit(1)
	}

	codec, err := shortlink.NewCodec(cfg.ShortLinkSalt, cfg.ShortLinkMinLength)
	if err != nil {
		logger.Error("short link codec setup failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewCartRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	tokenStore := repository.NewRefreshTokenStore(redisClient)

	// Services
	authService := service.NewAuthService(userRepo, tokenStore, cfg)
	userService := service.NewUserService(userRepo)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	validator := validation.NewRecipeValidator(tagRepo, ingredientRepo)
	recipeService := service.NewRecipeService(recipeRepo, validator)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	cartService := service.NewCartService(cartRepo, recipeRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	shoppingListService := service.NewShoppingListService(ingredientRepo)

	// Handlers
	accessTTLSeconds := int(cfg.AccessTokenTTL.Seconds())
	authHandler := handler.NewAuthHandler(authService, accessTTLSeconds)
	userHandler := handler.NewUserHandler(userService, subscriptionService, cfg.PageSize)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(
		recipeService,
		favoriteService,
		cartService,
		subscriptionService,
		shoppingListService,
		codec,
		cfg.ShortLinkPath,
		cfg.PageSize,
	)
	shortLinkHandler := handler.NewShortLinkHandler(recipeService, codec)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"))
	userHandler.RegisterRoutes(api.Group("/users"), requireAuth, optionalAuth)
	tagHandler.RegisterRoutes(api.Group("/tags"))
	ingredientHandler.RegisterRoutes(api.Group("/ingredients"))
	recipeHandler.RegisterRoutes(api.Group("/recipes"), requireAuth, optionalAuth)
	shortLinkHandler.RegisterRoutes(r.Group("/" + cfg.ShortLinkPath))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("api server listening", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
