package repository

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Solo productos activos salvo IncludeInactive;
// OnlyInactive devuelve únicamente los desactivados (papelera).
type ProductFilter struct {
	CategoryID      string
	State           entity.ProductState
	Search          string // código, código de barras, nombre o descripción
	IncludeInactive bool
	OnlyInactive    bool
	Limit           int
	Offset          int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create y Save recalculan el estado derivado antes de escribir.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	FindByCodeOrBarcode(ctx context.Context, code string) (*entity.Product, error)
	Save(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// FindActiveBelowThreshold devuelve productos activos con cantidad <= mínimo (incluye agotados).
	FindActiveBelowThreshold(ctx context.Context) ([]*entity.Product, error)
	CountActiveByCategory(ctx context.Context, categoryID string) (int, error)
	SetActive(ctx context.Context, id string, active bool) error
}
