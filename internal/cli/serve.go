package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlab-tracking/treesearch/pkg/httpapi"
)

// serveCommand creates the "serve" command: run the HTTP match service
// against a shared, read-only cache of generated trees.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP match service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			backend, err := newCache(noCache, redisAddr)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer backend.Close()

			srv := &httpapi.Server{Cache: backend, Logger: c.Logger}
			httpSrv := &http.Server{
				Addr:    addr,
				Handler: srv.NewRouter(),
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Infof("serving on %s", addr)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				return httpSrv.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation cache")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "serve trees from a shared Redis cache instead of the local file cache")

	return cmd
}
