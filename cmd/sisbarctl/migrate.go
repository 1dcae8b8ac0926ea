package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica todas las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(e, func(m *postgres.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				e.log.Info().Msg("migraciones aplicadas")
				return nil
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones (por defecto una)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps debe ser mayor que cero")
			}
			return withMigrator(e, func(m *postgres.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				e.log.Info().Int("steps", steps).Msg("migraciones revertidas")
				return nil
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "cantidad de migraciones a revertir")

	version := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión actual del esquema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(e, func(m *postgres.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withMigrator(e *env, fn func(m *postgres.Migrator) error) (err error) {
	m, err := postgres.NewMigrator(e.cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(m)
}
