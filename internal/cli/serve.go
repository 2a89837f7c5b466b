package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/parley/internal/wire"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the messaging API over HTTP until interrupted.

The listen address comes from --addr, PARLEY_LISTEN_ADDR or listen_addr in
.parley/config.json. Metrics are exposed at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = wire.Config().ListenAddr
			}

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			defer wire.DB().Close()
			return runServer(ctx, wire.Logger(), listener, wire.HTTPServer().Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (host:port)")

	return cmd
}

// runServer serves handler on listener until ctx is done, then drains
// in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
