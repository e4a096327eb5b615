package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/refbook-backend/internal/app"
	"github.com/heartmarshall/refbook-backend/internal/app/seeder"
	"github.com/heartmarshall/refbook-backend/internal/config"
)

const seedTimeout = 30 * time.Minute

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "refbook",
		Short:         "Reference book lookup service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig loads and validates configuration and builds the logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Long: "Run the HTTP API until SIGINT or SIGTERM.\n\nEnvironment:\n" +
			config.Usage(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Serve(cmd.Context(), cfg, logger)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list schema migrations (default: up)",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{app.MigrateUp, app.MigrateDown, app.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := app.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Migrate(cmd.Context(), cfg, logger, command, cmd.OutOrStdout())
		},
	}
}

func newSeedCmd() *cobra.Command {
	var (
		file         string
		dryRun       bool
		seederConfig string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load refbooks, versions and elements from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seedCfg, err := seeder.LoadConfig(seederConfig)
			if err != nil {
				return err
			}
			// Flags override config.
			if cmd.Flags().Changed("file") {
				seedCfg.File = file
			}
			if cmd.Flags().Changed("dry-run") {
				seedCfg.DryRun = dryRun
			}
			if seedCfg.File == "" {
				return fmt.Errorf("--file (or SEEDER_FILE) is required")
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			res, err := app.Seed(ctx, cfg, logger, seedCfg.File, seedCfg.DryRun)
			if err != nil {
				return err
			}

			verb := "seeded"
			if res.DryRun {
				verb = "validated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d refbooks, %d versions, %d elements in %s\n",
				verb, res.Refbooks, res.Versions, res.Elements, res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML fixture")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without writing to the database")
	cmd.Flags().StringVar(&seederConfig, "seeder-config", "", "path to seeder YAML config file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}
