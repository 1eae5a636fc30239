package cli

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/istekapp/istek-sub000/config"
	"github.com/istekapp/istek-sub000/pkg/api/routes"
	"github.com/istekapp/istek-sub000/utils"
)

func init() {
	Register("serve", Serve)
}

func Serve(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "serve the test run API used by the client UI",
		Example: `istek serve --port 6790 -p ./collections`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				port, err := cmd.Flags().GetUint32("port")
				if err != nil {
					utils.LogError(logger, err, "failed to read the --port flag")
					return err
				}
				cfg.Port = port
			}

			svc := newRunner(logger, cfg)
			router := chi.NewRouter()
			router.Use(middleware.Recoverer)
			routes.New(router, svc, logger)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer utils.HandlePanic(logger)
				return routes.StartServer(gctx, logger, cfg.Port, router)
			})
			if err := g.Wait(); err != nil {
				utils.LogError(logger, err, "API server stopped with an error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().Uint32("port", cfg.Port, "Port the API server listens on")
	return cmd
}
