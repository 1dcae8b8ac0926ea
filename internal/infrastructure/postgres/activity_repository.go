package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo historial de actividad.
type ActivityRepo struct {
	q Querier
}

func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.ActivityRecord) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_log (id, user_id, kind, description, client_ip, created_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		a.ID, a.UserID, string(a.Kind), a.Description, a.ClientIP, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ActivityRecord, error) {
	return r.list(ctx, `SELECT id, user_id, kind, description, COALESCE(client_ip, ''), created_at
		FROM activity_log WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
}

func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityRecord, error) {
	return r.list(ctx, `SELECT id, user_id, kind, description, COALESCE(client_ip, ''), created_at
		FROM activity_log ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *ActivityRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ActivityRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityRecord
	for rows.Next() {
		var (
			a    entity.ActivityRecord
			kind string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &kind, &a.Description, &a.ClientIP, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind = entity.ActivityKind(kind)
		list = append(list, &a)
	}
	return list, rows.Err()
}
