// Package cli wires the cobra commands to the engine services.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/istekapp/istek-sub000/config"
	"github.com/istekapp/istek-sub000/pkg/platform/yaml/collectiondb"
	"github.com/istekapp/istek-sub000/pkg/service/testrun"
)

type HookFunc func(context.Context, *zap.Logger, *config.Config) *cobra.Command

// Registered holds the registered command hooks
var Registered map[string]HookFunc

func Register(name string, f HookFunc) {
	if Registered == nil {
		Registered = make(map[string]HookFunc)
	}
	Registered[name] = f
}

// newRunner builds the engine with the yaml collection store and optional
// rate pacing, from the effective configuration.
func newRunner(logger *zap.Logger, cfg *config.Config) testrun.Service {
	store := collectiondb.New(logger, cfg.Path)
	opts := []testrun.RunnerOption{testrun.WithCollections(store)}
	if cfg.Test.RPS > 0 {
		opts = append(opts, testrun.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Test.RPS), 1)))
	}
	return testrun.New(logger, nil, opts...)
}
