package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	delivery "tradeJournal/internal/delivery/http"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the journal HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, opts, func(ctx context.Context, deps *appDependency) error {
				if port > 0 {
					deps.cfg.HTTPPort = port
				}
				return serve(ctx, deps)
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override HTTP_PORT")
	return cmd
}

func serve(parent context.Context, deps *appDependency) error {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HidePort = true
	delivery.NewHttpAPIHandler(ctx, e, goValidator.New(), deps.service, deps.log).SetupRoutes()

	address := fmt.Sprintf(":%d", deps.cfg.HTTPPort)
	serverErr := make(chan error, 1)
	go func() {
		deps.log.Info(ctx, "Starting HTTP server", map[string]interface{}{"address": address})
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			deps.log.Error(ctx, err, "HTTP server failed")
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	deps.log.Info(context.Background(), "Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		deps.log.Error(shutdownCtx, err, "Error when stopping HTTP server")
		return err
	}
	deps.log.Info(shutdownCtx, "HTTP server stopped")
	return nil
}
