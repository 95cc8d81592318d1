package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/phoneshop-api/internal/auth"
	"github.com/noah-isme/phoneshop-api/internal/barcode"
	"github.com/noah-isme/phoneshop-api/internal/catalog"
	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/config"
	"github.com/noah-isme/phoneshop-api/internal/db"
	"github.com/noah-isme/phoneshop-api/internal/health"
	"github.com/noah-isme/phoneshop-api/internal/inventory"
	"github.com/noah-isme/phoneshop-api/internal/ledger"
	"github.com/noah-isme/phoneshop-api/internal/obs"
	"github.com/noah-isme/phoneshop-api/internal/pricing"
	"github.com/noah-isme/phoneshop-api/internal/reports"
	"github.com/noah-isme/phoneshop-api/internal/sales"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(opts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	} else {
		logger.Info().Msg("redis not configured, caching disabled")
	}

	labels, err := barcode.NewFileRenderer(cfg.BarcodeDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("prepare barcode directory")
	}

	engine := pricing.New(pricing.DefaultRate)
	reportCache := common.NewCache(redisClient, cfg.ReportCacheTTL)

	authService := auth.NewService(auth.Config{
		Store:          auth.NewPostgresStore(pool),
		Secret:         cfg.JWTSecret,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Logger:         logger,
	})
	authMiddleware := auth.Middleware{Service: authService}
	authHandler := auth.NewHandler(authService)

	inventoryService := inventory.NewService(inventory.NewPostgresStore(pool), engine, labels, logger)
	inventoryHandler := inventory.NewHandler(inventoryService)

	salesStore := sales.NewPostgresStore(pool)
	salesService := sales.NewService(salesStore, engine, logger)
	salesHandler := sales.NewHandler(salesService)

	catalogService := catalog.NewService(catalog.NewPostgresStore(pool), reportCache, logger)
	catalogHandler := catalog.NewHandler(catalogService)

	reportsService := reports.NewService(reports.NewPostgresStore(pool), salesStore, reportCache, logger)
	reportsHandler := reports.NewHandler(reportsService)

	ledgerHandler := ledger.NewHandler(ledger.NewPostgresStore(pool))

	if err := authService.SeedAdmin(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed admin account")
	}
	if err := catalogService.SeedDefaults(ctx); err != nil {
		logger.Fatal().Err(err).Msg("seed catalog defaults")
	}

	healthHandler := health.Handler{Pool: pool, Redis: redisClient}
	httpMetrics := obs.NewHTTPMetrics("phoneshop", nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(v chi.Router) {
		v.Post("/auth/login", authHandler.Login)

		v.Group(func(g chi.Router) {
			g.Use(authMiddleware.RequireAuth)

			g.Get("/auth/me", authHandler.Me)

			g.Post("/phones", inventoryHandler.AddPhone)
			g.Get("/phones", inventoryHandler.ListPhones)
			g.Get("/phones/barcode/{number}", inventoryHandler.GetPhoneByBarcode)
			g.Get("/phones/barcode/{number}/image", inventoryHandler.BarcodeImage)
			g.Get("/phones/{id}", inventoryHandler.GetPhone)
			g.Delete("/phones/{id}", inventoryHandler.DeletePhone)
			g.Get("/search", inventoryHandler.Search)

			g.Post("/accessories", inventoryHandler.AddAccessory)
			g.Get("/accessories", inventoryHandler.ListAccessories)
			g.Get("/accessories/{id}", inventoryHandler.GetAccessory)
			g.Put("/accessories/{id}", inventoryHandler.UpdateAccessory)
			g.Delete("/accessories/{id}", inventoryHandler.DeleteAccessory)

			g.Post("/sales", salesHandler.Checkout)
			g.Get("/sales", salesHandler.ListSales)
			g.Get("/sales/{id}", salesHandler.GetSale)

			g.Get("/phone-types", catalogHandler.ListPhoneTypes)
			g.Get("/phone-types/brands", catalogHandler.Brands)

			g.Get("/accessory-categories", catalogHandler.ListCategories)

			g.Get("/reports/dashboard", reportsHandler.Dashboard)
			g.Get("/reports/inventory-summary", reportsHandler.InventorySummary)
			g.Get("/reports/sales", reportsHandler.SalesReport)

			g.Group(func(admin chi.Router) {
				admin.Use(authMiddleware.RequireAdmin)
				admin.Post("/auth/register", authHandler.Register)
				admin.Get("/transactions", ledgerHandler.List)

				admin.Post("/phone-types", catalogHandler.AddPhoneType)
				admin.Delete("/phone-types/{id}", catalogHandler.DeletePhoneType)
				admin.Post("/accessory-categories", catalogHandler.AddCategory)
				admin.Put("/accessory-categories/{id}", catalogHandler.UpdateCategory)
				admin.Delete("/accessory-categories/{id}", catalogHandler.DeleteCategory)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
