// Package cmd contains the bynder command line application.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/Bynder/bynder-go-sdk/pkg/bynder"
	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/log"
	"github.com/Bynder/bynder-go-sdk/pkg/metrics"
	"github.com/Bynder/bynder-go-sdk/pkg/tracing"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:           "bynder",
		Short:         "A command line client for the Bynder asset bank",
		Version:       configs.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			cfg := configs.GetConfig()
			if debug {
				cfg.Log.Level = "debug"
				cfg.Log.Debug = true
			}

			log.Init()

			if err := tracing.InitTracer(cfg.Tracing); err != nil {
				return err
			}

			if err := metrics.InitMetrics(cfg.Metrics); err != nil {
				return err
			}

			return metrics.StartMetricsServer(cmd.Context(), cfg.Metrics)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return tracing.ShutdownTracer(ctx)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	registerUploadCommands()
	registerMediaCommands()
	registerCollectionCommands()
	registerConfigsCommands()
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newClient builds a client from the loaded configuration.
func newClient(ctx context.Context) (*bynder.Client, error) {
	return bynder.New(ctx, *configs.GetConfig(), bynder.WithLogger(log.Logger()))
}

// printJSON writes v as indented JSON to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(b))

	return nil
}

// optionalBool returns a pointer to the flag value when the flag was given.
func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}

	return &v
}
