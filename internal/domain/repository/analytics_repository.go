package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockStateCounts conteo de productos activos por estado.
type StockStateCounts struct {
	Total     int
	Available int
	Low       int
	Out       int
}

// CategoryCount productos activos por categoría.
type CategoryCount struct {
	CategoryID string
	Name       string
	Icon       string
	Color      string
	Total      int
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
type AnalyticsRepository interface {
	GetStockStateCounts(ctx context.Context) (StockStateCounts, error)
	// GetInventoryValue suma de cantidad * precio de compra de productos activos.
	GetInventoryValue(ctx context.Context) (decimal.Decimal, error)
	GetTopCategories(ctx context.Context, limit int) ([]CategoryCount, error)
}
