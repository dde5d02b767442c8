// Package graceful ties process shutdown to a context.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Context returns a context that is canceled on SIGINT or SIGTERM. Calling the returned
// cancel func also stops signal delivery.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().Str("signal", sig.String()).Msg("received termination signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
