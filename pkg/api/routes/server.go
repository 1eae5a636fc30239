package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// StartServer runs the API server until ctx is cancelled, then shuts it
// down gracefully.
func StartServer(ctx context.Context, logger *zap.Logger, port uint32, router http.Handler) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down HTTP server", zap.Error(err))
		}
	}()

	logger.Info("starting HTTP server", zap.Uint32("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
