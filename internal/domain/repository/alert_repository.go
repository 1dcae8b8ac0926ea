package repository

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// AlertRepository puerto de persistencia para alertas de inventario.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// ExistsUnresolved evalúa la clave de deduplicación (producto, tipo, no resuelta).
	ExistsUnresolved(ctx context.Context, productID string, alertType entity.AlertType) (bool, error)
	ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Alert, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	Resolve(ctx context.Context, id string) error
}
