package ports

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// ActivityRecorder registra acciones de usuario sin afectar la operación principal.
type ActivityRecorder interface {
	Record(ctx context.Context, userID string, kind entity.ActivityKind, description, clientIP string)
}
