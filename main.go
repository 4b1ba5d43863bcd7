package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"pulse-metrics/domain/repository"
	"pulse-metrics/infrastructure/cache"
	billingclient "pulse-metrics/infrastructure/clients/billing"
	tiktokclient "pulse-metrics/infrastructure/clients/tiktok"
	"pulse-metrics/infrastructure/configuration"
	"pulse-metrics/infrastructure/logger"
	"pulse-metrics/infrastructure/persistence"
	httpHandler "pulse-metrics/interfaces/http"
	"pulse-metrics/server"
	"pulse-metrics/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, mysqlDb := initiateDatabase()

	kv := initiateKeyValue(ctx)

	// Billing projection store: postgres by default, gorm/mysql when the
	// vendor says so, nil-tolerant otherwise (KV-only demo mode).
	var profileStore repository.IProfileStore
	switch {
	case configuration.C.Database.Vendor == "mysql" && mysqlDb != nil:
		if err := persistence.EnsureProfileSchemaMySQL(mysqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring profile schema (mysql)")
		}
		profileStore = persistence.NewProfileRepositoryMySQL(mysqlDb)
	default:
		if psqlDb != nil {
			if err := persistence.EnsureProfileSchema(psqlDb); err != nil {
				logger.GetLogger().WithField("error", err).Error("failed ensuring profile schema")
			}
		}
		profileStore = persistence.NewProfileRepository(psqlDb)
	}

	if psqlDb != nil {
		for name, ensure := range map[string]func(*sql.DB) error{
			"competitors":        persistence.EnsureCompetitorSchema,
			"snapshots":          persistence.EnsureSnapshotSchema,
			"connected accounts": persistence.EnsureConnectedAccountSchema,
		} {
			if err := ensure(psqlDb); err != nil {
				logger.GetLogger().WithField("schema", name).WithField("error", err).Error("schema setup failed")
			}
		}
	}

	competitorStore := persistence.NewCompetitorRepository(psqlDb)
	snapshotStore := persistence.NewSnapshotRepository(psqlDb)
	accountStore := persistence.NewConnectedAccountRepository(psqlDb)
	userRepository := persistence.NewUserRepository(psqlDb)

	// TikTok data provider: mock mode when no RapidAPI key is configured so
	// the dashboard always renders.
	tiktok := tiktokclient.NewClient(configuration.C.RapidAPI)
	if configuration.C.MockMode() {
		logger.GetLogger().Info("RapidAPI key not configured - serving deterministic mock data")
	}

	billing := billingclient.NewClient(configuration.C.Stripe, app.FrontendURL, profileStore)
	if !billing.Configured() {
		logger.GetLogger().Info("Stripe not configured - billing runs in local demo mode")
	}

	analytics := usecase.NewAnalyticsUsecase()
	dashboard := usecase.NewDashboardUseCase(tiktok, kv, analytics)
	if psqlDb != nil {
		if d, ok := dashboard.(*usecase.DashboardUseCase); ok {
			d.WithSnapshots(snapshotStore)
		}
	}
	trending := usecase.NewTrendingUseCase(tiktok, kv)
	competitors := usecase.NewCompetitorUseCase(competitorStore, tiktok, analytics, dashboard)
	entitlement := usecase.NewEntitlementUsecase(billing, kv, profileStore, app.FrontendURL)

	tiktokAuthHandler, err := httpHandler.NewTikTokAuthHandler(accountStore)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("TikTok OAuth handler unavailable")
		tiktokAuthHandler = nil
	}

	handlers := server.Handlers{
		Billing:      httpHandler.NewBillingHandler(billing, entitlement),
		Analytics:    httpHandler.NewAnalyticsHandler(dashboard, analytics, entitlement),
		Trending:     httpHandler.NewTrendingHandler(trending, entitlement),
		Competitors:  httpHandler.NewCompetitorHandler(competitors, entitlement),
		Subscription: httpHandler.NewSubscriptionHandler(entitlement),
		TikTokAuth:   tiktokAuthHandler,
		Export:       httpHandler.NewExportHandler(dashboard, entitlement),
	}

	router := server.InitiateRouter(handlers, userRepository)

	// Background competitor refresh keeps tracked accounts warm in the cache
	// and records their daily snapshots.
	if psqlDb != nil {
		g.Go(func() error {
			ticker := time.NewTicker(30 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					refreshCtx, cancelRefresh := context.WithTimeout(ctx, 2*time.Minute)
					refreshTrackedCompetitors(refreshCtx, competitorStore, dashboard)
					cancelRefresh()
				}
			}
		})
	}

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			if err := httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateDatabase connects the configured vendor. A failed connection is
// tolerated: the stores run nil-backed and the app serves from cache only.
func initiateDatabase() (*sql.DB, *gorm.DB) {
	if configuration.C.Database.Vendor == "mysql" {
		db, err := persistence.NewMySQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("MySQL not available - continuing without persistence")
			return nil, nil
		}
		logger.GetLogger().Info("MySQL connected")
		return nil, db
	}

	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - continuing without persistence")
		return nil, nil
	}
	if err := db.Ping(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL ping failed - continuing without persistence")
		return nil, nil
	}
	logger.GetLogger().Info("PostgreSQL connected")
	return db, nil
}

// initiateKeyValue connects redis, falling back to the in-process store so
// caching and the local subscription path keep working
func initiateKeyValue(ctx context.Context) repository.IKeyValue {
	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - using in-memory store")
		return cache.NewMemoryStore()
	}
	logger.GetLogger().Info("Redis client initialized successfully.")
	return cache.NewRedisStore(redisClient)
}

// refreshTrackedCompetitors re-reads every tracked competitor profile so the
// cache and snapshot history stay current between dashboard visits
func refreshTrackedCompetitors(ctx context.Context, store repository.ICompetitorStore, dashboard usecase.IDashboard) {
	handles, err := store.AllHandles(ctx)
	if err != nil || len(handles) == 0 {
		return
	}
	for _, handle := range handles {
		if _, err := dashboard.Profile(ctx, handle); err != nil {
			logger.GetLogger().WithField("username", handle).WithField("error", err.Error()).Debug("competitor refresh failed")
		}
	}
}
