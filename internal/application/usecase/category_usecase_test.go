package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/usecase"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

func TestCategoryCreate_GeneraSlug(t *testing.T) {
	repo := &mockCategoryRepo{}
	repo.On("GetByName", mock.Anything, "Bebidas Frías").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
		return c.Slug == "bebidas-frias" && c.Active
	})).Return(nil)
	rec := &nopRecorder{}

	uc := usecase.NewCategoryUseCase(repo, &mockProductRepo{}, rec)
	resp, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: " Bebidas Frías ", Color: "#1A2B3C"}, employee)
	require.NoError(t, err)
	assert.Equal(t, "bebidas-frias", resp.Slug)
	assert.Equal(t, 1, rec.n)
	repo.AssertExpectations(t)
}

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := &mockCategoryRepo{}
	repo.On("GetByName", mock.Anything, "licores").Return(&entity.Category{ID: "c1", Name: "Licores"}, nil)

	uc := usecase.NewCategoryUseCase(repo, &mockProductRepo{}, nil)
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "licores"}, employee)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryCreate_ColorInvalido(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&mockCategoryRepo{}, &mockProductRepo{}, nil)
	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Aseo", Color: "rojo"}, employee)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una categoría con productos activos queda protegida.
func TestCategoryDesactivar_ConProductosActivos(t *testing.T) {
	repo := &mockCategoryRepo{}
	repo.On("GetByID", mock.Anything, "c1").Return(&entity.Category{ID: "c1", Name: "Licores", Active: true}, nil)
	products := &mockProductRepo{}
	products.On("CountActiveByCategory", mock.Anything, "c1").Return(3, nil)

	uc := usecase.NewCategoryUseCase(repo, products, nil)
	err := uc.SetActive(context.Background(), "c1", false, admin)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryDesactivar_SinProductos(t *testing.T) {
	repo := &mockCategoryRepo{}
	repo.On("GetByID", mock.Anything, "c1").Return(&entity.Category{ID: "c1", Name: "Licores", Active: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool { return !c.Active })).Return(nil)
	products := &mockProductRepo{}
	products.On("CountActiveByCategory", mock.Anything, "c1").Return(0, nil)

	uc := usecase.NewCategoryUseCase(repo, products, nil)
	require.NoError(t, uc.SetActive(context.Background(), "c1", false, admin))
	repo.AssertExpectations(t)
}

func TestCategoryDesactivar_EmpleadoSinPermiso(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&mockCategoryRepo{}, &mockProductRepo{}, nil)
	assert.ErrorIs(t, uc.SetActive(context.Background(), "c1", false, employee), domain.ErrForbidden)
}

func TestCreateSubcategory_DuplicadaEnCategoria(t *testing.T) {
	repo := &mockCategoryRepo{}
	repo.On("GetByID", mock.Anything, "c1").Return(&entity.Category{ID: "c1", Name: "Licores", Active: true}, nil)
	repo.On("ListSubcategories", mock.Anything, "c1").Return([]*entity.Subcategory{{ID: "s1", Name: "Ron"}}, nil)

	uc := usecase.NewCategoryUseCase(repo, &mockProductRepo{}, nil)
	_, err := uc.CreateSubcategory(context.Background(), "c1", dto.CreateSubcategoryRequest{Name: "RON"}, employee)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
