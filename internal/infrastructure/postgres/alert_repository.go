package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `a.id, a.product_id, p.name, a.type, a.message, a.generated_at, a.read, a.read_at, a.resolved, a.resolved_at`

// AlertRepo alertas de inventario. El índice único parcial alerts_open_unique
// garantiza una sola alerta no resuelta por (producto, tipo).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el repositorio de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create inserta la alerta; devuelve domain.ErrDuplicate si ya hay una abierta del mismo tipo.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, product_id, type, message, generated_at, read, resolved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, a.ID, a.ProductID, string(a.Type), a.Message, a.GeneratedAt, a.Read, a.Resolved)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	row := r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts a JOIN products p ON p.id = a.product_id WHERE a.id = $1`, id)
	a, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// ExistsUnresolved indica si el producto ya tiene una alerta abierta de ese tipo.
func (r *AlertRepo) ExistsUnresolved(ctx context.Context, productID string, alertType entity.AlertType) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM alerts WHERE product_id = $1 AND type = $2 AND NOT resolved)`,
		productID, string(alertType),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check open alert: %w", err)
	}
	return exists, nil
}

// ListUnresolved alertas abiertas, más recientes primero. limit <= 0 devuelve todas.
func (r *AlertRepo) ListUnresolved(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	var w whereBuilder
	w.addRaw("NOT a.resolved")
	query := `SELECT ` + alertColumns + ` FROM alerts a JOIN products p ON p.id = a.product_id` +
		w.sql() + ` ORDER BY a.generated_at DESC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CountUnread alertas abiertas sin leer.
func (r *AlertRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE NOT read AND NOT resolved`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return n, nil
}

// MarkRead marca la alerta como leída. Idempotente.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET read = TRUE, read_at = COALESCE(read_at, now()) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Resolve cierra la alerta; libera la clave (producto, tipo) para una nueva.
func (r *AlertRepo) Resolve(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET resolved = TRUE, resolved_at = COALESCE(resolved_at, now()) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAlert(row scanner) (*entity.Alert, error) {
	var (
		a   entity.Alert
		typ string
	)
	if err := row.Scan(&a.ID, &a.ProductID, &a.ProductName, &typ, &a.Message, &a.GeneratedAt,
		&a.Read, &a.ReadAt, &a.Resolved, &a.ResolvedAt); err != nil {
		return nil, err
	}
	a.Type = entity.AlertType(typ)
	return &a, nil
}
