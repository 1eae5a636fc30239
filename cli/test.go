package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/istekapp/istek-sub000/config"
	"github.com/istekapp/istek-sub000/pkg/models"
	"github.com/istekapp/istek-sub000/utils"
)

func init() {
	Register("test", Test)
}

func Test(ctx context.Context, logger *zap.Logger, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "test",
		Short:   "run a test suite file or a stored collection",
		Example: `istek test -f ./smoke.yaml --stop-on-failure`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyTestFlags(cmd, cfg)

			svc := newRunner(logger, cfg)
			variables, err := cmd.Flags().GetStringToString("var")
			if err != nil {
				utils.LogError(logger, err, "failed to read the --var flag")
				return err
			}

			var summary *models.TestRunSummary
			switch {
			case cfg.Test.SuiteFile != "":
				req, err := loadSuite(cfg.Test.SuiteFile)
				if err != nil {
					utils.LogError(logger, err, "failed to load the test suite file")
					return err
				}
				req.StopOnFailure = cfg.Test.StopOnFailure
				req.DelayMs = cfg.Test.Delay
				if req.Variables == nil {
					req.Variables = map[string]string{}
				}
				for key, value := range variables {
					req.Variables[key] = value
				}
				summary, err = svc.Run(ctx, req)
				if err != nil {
					utils.LogError(logger, err, "failed to execute the test run")
					return err
				}
			case cfg.Test.Collection != "":
				summary, err = svc.RunCollection(ctx, &models.CollectionRunRequest{
					CollectionID:  cfg.Test.Collection,
					FolderID:      cfg.Test.Folder,
					StopOnFailure: cfg.Test.StopOnFailure,
					DelayMs:       cfg.Test.Delay,
					Variables:     variables,
				})
				if err != nil {
					utils.LogError(logger, err, "failed to execute the collection run")
					return err
				}
			default:
				return fmt.Errorf("either --file or --collection is required")
			}

			printSummary(summary)
			if summary.Failed+summary.Errors > 0 {
				return fmt.Errorf("test run finished with %d failing and %d errored requests",
					summary.Failed, summary.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", cfg.Test.SuiteFile, "Path to a test suite yaml file")
	cmd.Flags().String("collection", cfg.Test.Collection, "Id of the stored collection to run")
	cmd.Flags().String("folder", cfg.Test.Folder, "Run only this folder of the collection, including subfolders")
	cmd.Flags().Bool("stop-on-failure", cfg.Test.StopOnFailure, "Abort the run on the first failed or errored request")
	cmd.Flags().Int64("delay", cfg.Test.Delay, "Delay between requests in milliseconds")
	cmd.Flags().Int("rps", cfg.Test.RPS, "Cap on request starts per second (0 = unlimited)")
	cmd.Flags().StringToString("var", nil, "Initial run variables, e.g. --var token=abc")

	return cmd
}

// applyTestFlags folds explicitly set flags over the config-file values.
func applyTestFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("file") {
		cfg.Test.SuiteFile, _ = cmd.Flags().GetString("file")
	}
	if cmd.Flags().Changed("collection") {
		cfg.Test.Collection, _ = cmd.Flags().GetString("collection")
	}
	if cmd.Flags().Changed("folder") {
		cfg.Test.Folder, _ = cmd.Flags().GetString("folder")
	}
	if cmd.Flags().Changed("stop-on-failure") {
		cfg.Test.StopOnFailure, _ = cmd.Flags().GetBool("stop-on-failure")
	}
	if cmd.Flags().Changed("delay") {
		cfg.Test.Delay, _ = cmd.Flags().GetInt64("delay")
	}
	if cmd.Flags().Changed("rps") {
		cfg.Test.RPS, _ = cmd.Flags().GetInt("rps")
	}
}

// loadSuite parses a suite yaml file into a run request.
func loadSuite(path string) (*models.TestRunRequest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, expected a file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	var req models.TestRunRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}
	if len(req.Requests) == 0 {
		return nil, fmt.Errorf("no requests found in the test suite")
	}
	return &req, nil
}
