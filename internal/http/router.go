package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/TheXbomber/budgify-server/internal/http/account"
	"github.com/TheXbomber/budgify-server/internal/http/backup"
	"github.com/TheXbomber/budgify-server/internal/http/category"
	"github.com/TheXbomber/budgify-server/internal/http/dashboard"
	"github.com/TheXbomber/budgify-server/internal/http/goal"
	"github.com/TheXbomber/budgify-server/internal/http/loan"
	"github.com/TheXbomber/budgify-server/internal/http/progress"
	"github.com/TheXbomber/budgify-server/internal/http/scan"
	"github.com/TheXbomber/budgify-server/internal/http/session"
	"github.com/TheXbomber/budgify-server/internal/http/transaction"
)

func New(
	sessionV1 *session.Handler,
	verifier session.Verifier,
	accountsV1 *account.Handler,
	categoriesV1 *category.Handler,
	transactionsV1 *transaction.Handler,
	goalsV1 *goal.Handler,
	loansV1 *loan.Handler,
	progressV1 *progress.Handler,
	dashboardV1 *dashboard.Handler,
	scanV1 *scan.Handler,
	backupV1 *backup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			sessionV1.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(session.Authenticator(verifier))

			r.Route("/security", sessionV1.Routes)

			r.Route("/accounts", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				accountsV1.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				goalsV1.Routes(r)
			})

			r.Route("/loans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				loansV1.Routes(r)
			})

			r.Route("/progress", progressV1.Routes)

			r.Route("/dashboard", dashboardV1.Routes)

			r.Route("/scan", scanV1.Routes)

			r.Route("/backup", backupV1.Routes)
		})
	})

	return router
}
