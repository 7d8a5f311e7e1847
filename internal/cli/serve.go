package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/keypair-wallet/internal/api"
	"github.com/AlexZinkM/keypair-wallet/internal/config"
	"github.com/AlexZinkM/keypair-wallet/solana"
)

func newServe(w *wallet) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (Swagger UI at /swagger/, metrics at /metrics)",
		Args:  cobra.NoArgs,
		RunE: w.run(func(cmd *cobra.Command, args []string, m *solana.Manager) error {
			srv := &http.Server{
				Addr:              ":" + config.GetPort(),
				Handler:           api.SetupRouter(m),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			// Let in-flight transfers finish waiting for confirmation
			grace := config.Get().ConfirmTimeout + 5*time.Second
			log.Info().Dur("grace", grace).Msg("Shutting down HTTP server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}),
	}
}
