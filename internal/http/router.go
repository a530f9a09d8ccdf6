package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kuhlali/chamapro-extend/internal/http/export"
	"github.com/kuhlali/chamapro-extend/internal/http/group"
	"github.com/kuhlali/chamapro-extend/internal/http/investment"
	"github.com/kuhlali/chamapro-extend/internal/http/loan"
	"github.com/kuhlali/chamapro-extend/internal/http/payment"
	"github.com/kuhlali/chamapro-extend/internal/http/report"
	"github.com/kuhlali/chamapro-extend/internal/http/user"
)

type Handlers struct {
	Users       *user.Handler
	Groups      *group.Handler
	Payments    *payment.Handler
	Loans       *loan.Handler
	Investments *investment.Handler
	Reports     *report.Handler
	Statements  *export.Handler
}

type Options struct {
	AllowedOrigins []string
	// Authenticate guards /api/v1; it must put the caller on the context
	// the way auth.Tokens.Middleware does.
	Authenticate func(http.Handler) http.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/payments", h.Payments.CallbackRoutes)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Use(opts.Authenticate)

		r.Route("/me", h.Users.Routes)

		r.Route("/groups", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Groups.Routes(r)
			})

			r.Route("/{groupID}/contributions", h.Payments.ContributionRoutes)
			r.Route("/{groupID}/statement", h.Statements.Routes)
			r.Route("/{groupID}/subscription", h.Payments.SubscriptionRoutes)
			r.Route("/{groupID}/loans", h.Loans.Routes)
			r.Route("/{groupID}/investments", h.Investments.Routes)
		})

		r.Route("/reports", h.Reports.Routes)
	})

	return router
}
