package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/vecindario/marketplace-api/internal/auth"
	"github.com/vecindario/marketplace-api/internal/booking"
	bookingrepo "github.com/vecindario/marketplace-api/internal/booking/repo"
	"github.com/vecindario/marketplace-api/internal/config"
	"github.com/vecindario/marketplace-api/internal/fallback"
	"github.com/vecindario/marketplace-api/internal/provider"
	providerrepo "github.com/vecindario/marketplace-api/internal/provider/repo"
	"github.com/vecindario/marketplace-api/internal/router"
	"github.com/vecindario/marketplace-api/internal/system"
	"github.com/vecindario/marketplace-api/internal/user"
	userrepo "github.com/vecindario/marketplace-api/internal/user/repo"
	"github.com/vecindario/marketplace-api/pkg/database"
	"github.com/vecindario/marketplace-api/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting marketplace-api")

	// load config; a missing or placeholder signing secret is fatal
	// before anything binds
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher()

	// connect to the database; on failure serve the fallback dataset
	// (reads only, writes answer 503)
	var (
		sqlxDB        *sqlx.DB
		userStore     user.Store
		providerStore provider.Store
		bookingStore  booking.Store
		source        = "database"
	)
	sqlDB, err := database.Connect(database.NewConfig(cfg.DatabaseURL))
	if err != nil {
		sugar.Warnf("db connect failed, serving fallback dataset: %v", err)
		ds := fallback.NewDataset()
		userStore = fallback.NewUsers(ds)
		providerStore = fallback.NewProviders(ds)
		bookingStore = fallback.NewBookings()
		source = "mock"
	} else {
		defer sqlDB.Close()
		sqlxDB = sqlx.NewDb(sqlDB, "postgres")

		users := userrepo.NewUserRepo(sqlxDB)
		providers := providerrepo.NewProviderRepo(sqlxDB)
		bookings := bookingrepo.NewBookingRepo(sqlxDB)

		ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, ensure := range []func(context.Context) error{
			users.EnsureTable, providers.EnsureTable, bookings.EnsureTable,
		} {
			if err := ensure(ensureCtx); err != nil {
				sugar.Fatalf("ensure tables: %v", err)
			}
		}

		userStore = users
		providerStore = providers
		bookingStore = bookings
	}

	userSvc := user.NewService(userStore, hasher, tokens)
	providerSvc := provider.NewService(providerStore)
	bookingSvc := booking.NewService(bookingStore)

	deps := router.Deps{
		Users:     user.NewHandler(userSvc, sugar),
		Providers: provider.NewHandler(providerSvc, sugar, source),
		Bookings:  booking.NewHandler(bookingSvc, sugar),
		System:    system.NewHandler(sugar, sqlxDB),
		Tokens:    tokens,
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.RegisterRoutes(sugar, deps),
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", cfg.HTTPAddr, "source", source)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
