package activity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Recorder historial de auditoría. Record es best-effort: un fallo de persistencia
// se registra en el log y nunca llega al llamador.
type Recorder struct {
	repo repository.ActivityRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el recorder. log puede ser nil.
func NewRecorder(repo repository.ActivityRepository, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{repo: repo, log: log.Component("activity"), now: time.Now}
}

// Record agrega una entrada al historial.
func (r *Recorder) Record(ctx context.Context, userID string, kind entity.ActivityKind, description, clientIP string) {
	if userID == "" {
		r.log.Warn().Str("kind", string(kind)).Msg("actividad sin usuario, se omite")
		return
	}
	rec := &entity.ActivityRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		Kind:        kind,
		Description: description,
		ClientIP:    clientIP,
		CreatedAt:   r.now(),
	}
	if err := r.repo.Create(ctx, rec); err != nil {
		r.log.Warn().Err(err).
			Str("user_id", userID).
			Str("kind", string(kind)).
			Msg("no se pudo registrar actividad")
	}
}

// ListByUser historial del usuario, más reciente primero.
func (r *Recorder) ListByUser(ctx context.Context, userID string, limit int) ([]dto.ActivityResponse, error) {
	list, err := r.repo.ListByUser(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListRecent feed global de auditoría, más reciente primero.
func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	list, err := r.repo.ListRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func toResponses(list []*entity.ActivityRecord) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, dto.ToActivityResponse(rec))
	}
	return out
}
