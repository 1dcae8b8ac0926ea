package repository

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// ActivityRepository puerto del historial de actividad (append-only).
type ActivityRepository interface {
	Create(ctx context.Context, record *entity.ActivityRecord) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ActivityRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityRecord, error)
}
