package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/TheXbomber/budgify-server/internal/account"
	accountStore "github.com/TheXbomber/budgify-server/internal/account/store"
	"github.com/TheXbomber/budgify-server/internal/auth"
	authStore "github.com/TheXbomber/budgify-server/internal/auth/store"
	"github.com/TheXbomber/budgify-server/internal/backup"
	backupStore "github.com/TheXbomber/budgify-server/internal/backup/store"
	"github.com/TheXbomber/budgify-server/internal/category"
	categoryStore "github.com/TheXbomber/budgify-server/internal/category/store"
	"github.com/TheXbomber/budgify-server/internal/completion"
	"github.com/TheXbomber/budgify-server/internal/composer"
	"github.com/TheXbomber/budgify-server/internal/config"
	"github.com/TheXbomber/budgify-server/internal/database"
	"github.com/TheXbomber/budgify-server/internal/goal"
	goalStore "github.com/TheXbomber/budgify-server/internal/goal/store"
	budgifyHttp "github.com/TheXbomber/budgify-server/internal/http"
	accountHandler "github.com/TheXbomber/budgify-server/internal/http/account"
	backupHandler "github.com/TheXbomber/budgify-server/internal/http/backup"
	categoryHandler "github.com/TheXbomber/budgify-server/internal/http/category"
	dashboardHandler "github.com/TheXbomber/budgify-server/internal/http/dashboard"
	goalHandler "github.com/TheXbomber/budgify-server/internal/http/goal"
	loanHandler "github.com/TheXbomber/budgify-server/internal/http/loan"
	progressHandler "github.com/TheXbomber/budgify-server/internal/http/progress"
	scanHandler "github.com/TheXbomber/budgify-server/internal/http/scan"
	sessionHandler "github.com/TheXbomber/budgify-server/internal/http/session"
	txHandler "github.com/TheXbomber/budgify-server/internal/http/transaction"
	"github.com/TheXbomber/budgify-server/internal/ledger"
	"github.com/TheXbomber/budgify-server/internal/loan"
	loanStore "github.com/TheXbomber/budgify-server/internal/loan/store"
	"github.com/TheXbomber/budgify-server/internal/ocr"
	"github.com/TheXbomber/budgify-server/internal/progress"
	progressStore "github.com/TheXbomber/budgify-server/internal/progress/store"
	"github.com/TheXbomber/budgify-server/internal/transaction"
	txStore "github.com/TheXbomber/budgify-server/internal/transaction/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// The snapshot loader needs the services and the services need the
	// composer for invalidation; the indirection breaks the cycle.
	var loader *composer.Loader

	comp := composer.New(composer.SourceFunc(func(ctx context.Context, uc auth.UserContext) (*composer.Snapshot, error) {
		return loader.Load(ctx, uc)
	}))

	var (
		authService     = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		ledgerService   = ledger.NewService(accountStore.New(db), txStore.New(db))
		accountService  = account.NewService(accountStore.New(db), comp)
		categoryService = category.NewService(categoryStore.New(db), comp)
		txService       = transaction.NewService(txStore.New(db), ledgerService, comp)
		goalService     = goal.NewService(goalStore.New(db), comp)
		progressService = progress.NewService(progressStore.New(db), comp)
		synthesizer     = completion.NewSynthesizer(loanStore.New(db), goalStore.New(db), categoryService, txService, progressService)
		loanService     = loan.NewService(loanStore.New(db), synthesizer, comp)
		scanClient      = ocr.NewClient(cfg.Scan.Endpoint, cfg.Scan.Timeout)
		backupService   = backup.NewService(backupStore.New(db), cfg.Backup.Endpoint, cfg.Backup.Timeout, ledgerService, comp)
	)

	loader = composer.NewLoader(accountService, txService, goalService, loanService, progressService)

	var (
		sessionH   = sessionHandler.NewHandler(authService, categoryService)
		accountH   = accountHandler.NewHandler(accountService)
		categoryH  = categoryHandler.NewHandler(categoryService)
		txH        = txHandler.NewHandler(txService)
		goalH      = goalHandler.NewHandler(goalService, accountService, synthesizer)
		loanH      = loanHandler.NewHandler(loanService, accountService, synthesizer)
		progressH  = progressHandler.NewHandler(progressService)
		dashboardH = dashboardHandler.NewHandler(comp)
		scanH      = scanHandler.NewHandler(scanClient, categoryService)
		backupH    = backupHandler.NewHandler(backupService)
	)

	router := budgifyHttp.New(
		sessionH,
		authService,
		accountH,
		categoryH,
		txH,
		goalH,
		loanH,
		progressH,
		dashboardH,
		scanH,
		backupH,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
