package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/sisbar-inventario/pkg/config"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

// env estado compartido por los subcomandos, cargado en PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "sisbarctl",
		Short:         "Herramientas operativas de Sisbar Inventario",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.AddCommand(
		newMigrateCmd(e),
		newAlertsCmd(e),
		newUsersCmd(e),
	)
	return root
}

// pool abre el pool de PostgreSQL; el llamador lo cierra.
func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	p, err := postgres.NewPool(ctx, e.cfg.DB, e.log)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return p, nil
}
