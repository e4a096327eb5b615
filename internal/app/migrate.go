package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/config"
)

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// Migrate runs one goose command against the configured database. Status
// output is written to out as a table.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, out io.Writer) error {
	switch command {
	case MigrateUp, MigrateDown, MigrateStatus:
	default:
		return fmt.Errorf("unknown migrate command %q (want up, down or status)", command)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer closeMigrator(ctx, m, logger)

	switch command {
	case MigrateUp:
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "migrations applied", slog.Any("versions", applied))
	case MigrateDown:
		reverted, err := m.Down(ctx)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "migration rolled back", slog.Any("versions", reverted))
	case MigrateStatus:
		states, err := m.Status(ctx)
		if err != nil {
			return err
		}
		return writeMigrationStatus(out, states)
	}

	return nil
}

func writeMigrationStatus(out io.Writer, states []postgres.MigrationState) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
	for _, s := range states {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
	}
	return tw.Flush()
}
