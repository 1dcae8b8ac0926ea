package repository

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category y Subcategory (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, includeInactive bool) ([]*entity.Category, error)

	CreateSubcategory(ctx context.Context, sub *entity.Subcategory) error
	GetSubcategory(ctx context.Context, id string) (*entity.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]*entity.Subcategory, error)
}
