package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/architectonquantum-commits/LABDEN/internal/application/seed"
	"github.com/architectonquantum-commits/LABDEN/internal/infrastructure/postgres"
	"github.com/architectonquantum-commits/LABDEN/pkg/config"
	"github.com/architectonquantum-commits/LABDEN/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "labden",
		Short: "API de órdenes de laboratorio dental",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// bootstrap carga configuración, logger y pool; el llamador cierra el pool.
func bootstrap(ctx context.Context) (*config.Config, *logger.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return cfg, log, pool, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de base de datos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, log, pool, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			n, err := postgres.NewMigrator(pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migración fallida: %w", err)
			}
			log.Info().Int("applied", n).Msg("migraciones aplicadas")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de las migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, _, pool, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := postgres.NewMigrator(pool).Status(ctx)
			if err != nil {
				return fmt.Errorf("estado de migraciones: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Fprintf(out, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	})
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "seed [production|test]",
		Short:     "Carga laboratorios, cuentas y (test) órdenes demo",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(seed.Production), string(seed.Test)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, log, pool, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := seed.NewSeeder(postgres.NewTxRunner(pool), log.Zerolog()).Run(ctx, seed.Kind(args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Message)
			fmt.Fprintf(out, "labs=%d users_created=%d users_updated=%d orders=%d\n",
				res.LaboratoriesCreated, res.UsersCreated, res.UsersUpdated, res.OrdersCreated)
			for _, c := range res.Credentials {
				fmt.Fprintf(out, "  %-12s %-28s %s\n", c.Role, c.Email, c.Password)
			}
			return nil
		},
	}
}
