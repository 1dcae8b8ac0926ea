package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sisbar-inventario/internal/application/activity"
	"github.com/jhoicas/sisbar-inventario/internal/application/auth"
	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
)

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Gestión de usuarios",
	}

	var in dto.RegisterRequest
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea un SUPER_ADMIN aprobado (bootstrap de una instalación nueva)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			recorder := activity.NewRecorder(postgres.NewActivityRepository(pool), e.log)
			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), recorder, ports.NopPublisher{}, auth.JWTConfig{
				Secret:     e.cfg.JWT.Secret,
				ExpMinutes: e.cfg.JWT.Expiration,
				Issuer:     e.cfg.JWT.Issuer,
			}, e.log)

			user, err := uc.CreateSuperAdmin(ctx, in)
			if err != nil {
				return fmt.Errorf("crear administrador: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id=%s, rol=%s)\n", user.Username, user.ID, user.Role)
			return nil
		},
	}
	createAdmin.Flags().StringVar(&in.Username, "username", "", "nombre de usuario")
	createAdmin.Flags().StringVar(&in.Email, "email", "", "correo electrónico")
	createAdmin.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	createAdmin.Flags().StringVar(&in.FirstName, "first-name", "", "nombre")
	createAdmin.Flags().StringVar(&in.LastName, "last-name", "", "apellido")
	_ = createAdmin.MarkFlagRequired("username")
	_ = createAdmin.MarkFlagRequired("email")
	_ = createAdmin.MarkFlagRequired("password")

	cmd.AddCommand(createAdmin)
	return cmd
}
