package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// MovementFilter filtros para el listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time
	Limit     int
	Offset    int
}

// MovementRepository puerto del ledger de movimientos. Append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
