package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockStateCounts conteo de productos activos por estado en una sola pasada.
func (r *AnalyticsRepo) GetStockStateCounts(ctx context.Context) (repository.StockStateCounts, error) {
	var c repository.StockStateCounts
	err := r.q.QueryRow(ctx, `
		SELECT
		    COUNT(*),
		    COUNT(*) FILTER (WHERE state = 'AVAILABLE'),
		    COUNT(*) FILTER (WHERE state = 'LOW'),
		    COUNT(*) FILTER (WHERE state = 'OUT')
		FROM products
		WHERE active`).Scan(&c.Total, &c.Available, &c.Low, &c.Out)
	if err != nil {
		return c, fmt.Errorf("stock state counts: %w", err)
	}
	return c, nil
}

// GetInventoryValue suma de cantidad * precio de compra de productos activos.
func (r *AnalyticsRepo) GetInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * purchase_price), 0) FROM products WHERE active`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return v, nil
}

// GetTopCategories categorías activas con más productos activos.
func (r *AnalyticsRepo) GetTopCategories(ctx context.Context, limit int) ([]repository.CategoryCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.name, c.icon, c.color, COUNT(p.id) AS total
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.active
		WHERE c.active
		GROUP BY c.id, c.name, c.icon, c.color
		ORDER BY total DESC, c.name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryCount
	for rows.Next() {
		var cc repository.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.Icon, &cc.Color, &cc.Total); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		list = append(list, cc)
	}
	return list, rows.Err()
}
