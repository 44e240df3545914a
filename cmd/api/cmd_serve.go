package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

var (
	serveMigrate bool
	serveSeed    bool
)

// shopbill serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot()
		if err != nil {
			return err
		}
		defer a.close()

		if !a.cfg.App.Debug || a.cfg.App.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		if serveMigrate {
			if err := database.AutoMigrate(a.db); err != nil {
				return err
			}
		}
		if serveSeed {
			if err := database.SeedDefaultData(a.db, a.log); err != nil {
				a.log.WithError(err).Warn("Failed to seed default data")
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		router, err := a.router(ctx, ctx.Done())
		if err != nil {
			return err
		}

		port := a.cfg.App.Port
		if port == "" {
			port = "8080"
		}
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.WithFields(map[string]interface{}{
				"port": port,
				"env":  a.cfg.App.Env,
			}).Infof("Starting %s server", a.cfg.App.Name)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "run database migrations before serving")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "seed demo data when the catalog is empty")
}
