package repository

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	Approved *bool
	Active   *bool
	Search   string
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	CountActiveByRole(ctx context.Context, role string) (int, error)
	CountPending(ctx context.Context) (int, error)
}
