package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/istekapp/istek-sub000/cli"
	"github.com/istekapp/istek-sub000/config"
	"github.com/istekapp/istek-sub000/utils"
	"github.com/istekapp/istek-sub000/utils/log"
)

// version is injected during build by ldflags.
var version string
var dsn string

func main() {
	if version == "" {
		version = "dev"
	}

	logger, err := log.New()
	if err != nil {
		os.Exit(1)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: version,
	}); err != nil {
		logger.Debug("could not initialize sentry", zap.Error(err))
	}
	defer utils.HandlePanic(logger)
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.New()
	rootCmd := cli.Root(ctx, logger, cfg)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
