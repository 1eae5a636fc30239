package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/istekapp/istek-sub000/config"
	"github.com/istekapp/istek-sub000/utils"
	"github.com/istekapp/istek-sub000/utils/log"
)

// Root builds the root command with the registered subcommands attached.
func Root(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "istek",
		Short:        "istek - run API test collections from the command line or serve them to the client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd, logger, cfg)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", cfg.Debug, "Run in debug mode")
	rootCmd.PersistentFlags().Bool("disableANSI", cfg.DisableANSI, "Disable colored report output")
	rootCmd.PersistentFlags().StringP("path", "p", cfg.Path, "Path to the local directory where collections are stored")
	rootCmd.PersistentFlags().String("configPath", cfg.ConfigPath, "Path to the directory holding the istek configuration file")

	for name, hook := range Registered {
		cmd := hook(ctx, logger, cfg)
		if cmd == nil {
			utils.LogError(logger, nil, "failed to build command", zap.String("command", name))
			continue
		}
		rootCmd.AddCommand(cmd)
	}
	return rootCmd
}

// loadConfig layers the optional istek.yaml config file and the flags over
// the defaults, then raises the log level if debug was requested.
func loadConfig(cmd *cobra.Command, logger *zap.Logger, cfg *config.Config) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		utils.LogError(logger, err, "failed to bind flags to config")
		return err
	}

	viper.SetConfigName("istek")
	viper.SetConfigType("yaml")
	if configPath := viper.GetString("configPath"); configPath != "" {
		viper.AddConfigPath(configPath)
	}
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			utils.LogError(logger, err, "failed to read the configuration file")
			return err
		}
	}
	if err := viper.Unmarshal(cfg); err != nil {
		utils.LogError(logger, err, "failed to unmarshal the configuration")
		return err
	}
	cfg.Path = strings.TrimSuffix(cfg.Path, "/")
	if cfg.DisableANSI {
		color.NoColor = true
	}

	if cfg.Debug {
		debugLogger, err := log.ChangeLogLevel(zap.DebugLevel)
		if err != nil {
			utils.LogError(logger, err, "failed to switch logger to debug level")
			return err
		}
		*logger = *debugLogger
	}
	return nil
}
