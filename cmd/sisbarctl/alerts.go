package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
)

func newAlertsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Alertas de stock",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Ejecuta una pasada del generador de alertas y termina",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			gen := inventory.NewAlertGenerator(
				postgres.NewProductRepository(pool),
				postgres.NewAlertRepository(pool),
				ports.NopPublisher{},
				e.log,
				e.cfg.Alerts.AutoResolve,
			)
			report, err := gen.Generate(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d created=%d resolved=%d\n",
				report.Scanned, len(report.Created), report.Resolved)
			return nil
		},
	}

	cmd.AddCommand(generate)
	return cmd
}
