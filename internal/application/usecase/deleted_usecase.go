package usecase

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// DeletedUseCase papelera: registros desactivados (soft delete) de todos los catálogos.
// La restauración usa los SetActive de cada caso de uso.
type DeletedUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	users      repository.UserRepository
}

// NewDeletedUseCase construye el caso de uso.
func NewDeletedUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	users repository.UserRepository,
) *DeletedUseCase {
	return &DeletedUseCase{products: products, categories: categories, suppliers: suppliers, users: users}
}

// List devuelve productos, categorías, proveedores y usuarios inactivos. Requiere ADMIN o SUPER_ADMIN.
func (uc *DeletedUseCase) List(ctx context.Context, actor entity.Actor) (*dto.DeletedItemsResponse, error) {
	if !actor.CanDelete() {
		return nil, domain.ErrForbidden
	}
	out := &dto.DeletedItemsResponse{
		Products:   []dto.ProductResponse{},
		Categories: []dto.CategoryResponse{},
		Suppliers:  []dto.SupplierResponse{},
		Users:      []dto.UserResponse{},
	}

	products, err := uc.products.List(ctx, repository.ProductFilter{OnlyInactive: true})
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.ToProductResponse(p))
	}

	// categorías y proveedores son catálogos chicos: se filtran en memoria
	categories, err := uc.categories.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if !c.Active {
			out.Categories = append(out.Categories, dto.ToCategoryResponse(c))
		}
	}

	suppliers, err := uc.suppliers.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, s := range suppliers {
		if !s.Active {
			out.Suppliers = append(out.Suppliers, dto.ToSupplierResponse(s))
		}
	}

	inactive := false
	users, err := uc.users.List(ctx, repository.UserFilter{Active: &inactive})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out.Users = append(out.Users, dto.ToUserResponse(u))
	}
	return out, nil
}
