package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kuhlali/chamapro-extend/internal/auth"
	"github.com/kuhlali/chamapro-extend/internal/contribution"
	contributionStore "github.com/kuhlali/chamapro-extend/internal/contribution/store"
	"github.com/kuhlali/chamapro-extend/internal/database"
	"github.com/kuhlali/chamapro-extend/internal/export"
	"github.com/kuhlali/chamapro-extend/internal/group"
	groupStore "github.com/kuhlali/chamapro-extend/internal/group/store"
	chamaHttp "github.com/kuhlali/chamapro-extend/internal/http"
	exportHandler "github.com/kuhlali/chamapro-extend/internal/http/export"
	groupHandler "github.com/kuhlali/chamapro-extend/internal/http/group"
	investmentHandler "github.com/kuhlali/chamapro-extend/internal/http/investment"
	loanHandler "github.com/kuhlali/chamapro-extend/internal/http/loan"
	paymentHandler "github.com/kuhlali/chamapro-extend/internal/http/payment"
	reportHandler "github.com/kuhlali/chamapro-extend/internal/http/report"
	userHandler "github.com/kuhlali/chamapro-extend/internal/http/user"
	"github.com/kuhlali/chamapro-extend/internal/investment"
	investmentStore "github.com/kuhlali/chamapro-extend/internal/investment/store"
	"github.com/kuhlali/chamapro-extend/internal/loan"
	loanStore "github.com/kuhlali/chamapro-extend/internal/loan/store"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/payment"
	paymentStore "github.com/kuhlali/chamapro-extend/internal/payment/store"
	"github.com/kuhlali/chamapro-extend/internal/report"
	reportStore "github.com/kuhlali/chamapro-extend/internal/report/store"
	"github.com/kuhlali/chamapro-extend/internal/user"
	userStore "github.com/kuhlali/chamapro-extend/internal/user/store"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db, database.Up); err != nil {
		return err
	}

	gateway := mpesa.NewClient(cfg.GatewayConfig())

	var (
		userService       = user.NewService(userStore.New(db))
		groupService      = group.NewService(groupStore.New(db), userService)
		engine            = contribution.NewEngine(contributionStore.New(db))
		paymentService    = payment.NewService(paymentStore.New(db), groupService, engine, userService, gateway)
		loanService       = loan.NewService(loanStore.New(db), groupService, userService, gateway)
		investmentService = investment.NewService(investmentStore.New(db), groupService)
		reportService     = report.NewService(reportStore.New(db), groupService)
		tokens            = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	router := chamaHttp.New(chamaHttp.Handlers{
		Users:       userHandler.NewHandler(userService, reportService),
		Groups:      groupHandler.NewHandler(groupService),
		Payments:    paymentHandler.NewHandler(paymentService, reportService),
		Loans:       loanHandler.NewHandler(loanService),
		Investments: investmentHandler.NewHandler(investmentService),
		Reports:     reportHandler.NewHandler(reportService),
		Statements:  exportHandler.NewHandler(export.NewService(reportService)),
	}, chamaHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authenticate:   tokens.Middleware,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Loan approval waits on the gateway inside the request.
		WriteTimeout: cfg.Server.Timeout + cfg.Mpesa.Timeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", cfg.App.Port, "mpesa_environment", cfg.Mpesa.Environment)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
