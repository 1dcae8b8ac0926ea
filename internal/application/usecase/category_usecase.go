package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/slug"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryUseCase categorías y subcategorías del catálogo.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	activity    ports.ActivityRecorder
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository, activity ports.ActivityRecorder) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo, activity: activity}
}

// Create crea una categoría. El nombre es único sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest, actor entity.Actor) (*dto.CategoryResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || (in.Color != "" && !hexColor.MatchString(in.Color)) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		Icon:        in.Icon,
		Color:       in.Color,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityCreate, "Creó categoría "+cat.Name)
	resp := dto.ToCategoryResponse(cat)
	return &resp, nil
}

// Update modifica una categoría existente.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest, actor entity.Actor) (*dto.CategoryResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	cat, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if !strings.EqualFold(name, cat.Name) {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != cat.ID {
				return nil, domain.ErrDuplicate
			}
		}
		cat.Name = name
		cat.Slug = slug.Make(name)
	}
	if in.Color != nil {
		if *in.Color != "" && !hexColor.MatchString(*in.Color) {
			return nil, domain.ErrInvalidInput
		}
		cat.Color = *in.Color
	}
	if in.Icon != nil {
		cat.Icon = *in.Icon
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit, "Editó categoría "+cat.Name)
	resp := dto.ToCategoryResponse(cat)
	return &resp, nil
}

// List categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCategoryResponse(c))
	}
	return out, nil
}

// SetActive desactiva o restaura. Una categoría con productos activos no se puede desactivar (ErrConflict).
func (uc *CategoryUseCase) SetActive(ctx context.Context, id string, active bool, actor entity.Actor) error {
	if !actor.CanDelete() {
		return domain.ErrForbidden
	}
	cat, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if !active {
		n, err := uc.productRepo.CountActiveByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrConflict
		}
	}
	cat.Active = active
	if err := uc.repo.Update(ctx, cat); err != nil {
		return err
	}
	if active {
		uc.record(ctx, actor, entity.ActivityEdit, "Restauró categoría "+cat.Name)
	} else {
		uc.record(ctx, actor, entity.ActivityDelete, "Desactivó categoría "+cat.Name)
	}
	return nil
}

// CreateSubcategory crea una subcategoría; el nombre es único dentro de la categoría.
func (uc *CategoryUseCase) CreateSubcategory(ctx context.Context, categoryID string, in dto.CreateSubcategoryRequest, actor entity.Actor) (*dto.SubcategoryResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	cat, err := uc.get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	siblings, err := uc.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, s := range siblings {
		if strings.EqualFold(s.Name, name) {
			return nil, domain.ErrDuplicate
		}
	}
	sub := &entity.Subcategory{
		ID:          uuid.New().String(),
		CategoryID:  cat.ID,
		Name:        name,
		Slug:        slug.Make(name),
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.CreateSubcategory(ctx, sub); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityCreate, "Creó subcategoría "+sub.Name+" en "+cat.Name)
	resp := dto.ToSubcategoryResponse(sub)
	return &resp, nil
}

// ListSubcategories subcategorías de una categoría.
func (uc *CategoryUseCase) ListSubcategories(ctx context.Context, categoryID string) ([]dto.SubcategoryResponse, error) {
	if _, err := uc.get(ctx, categoryID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSubcategoryResponse(s))
	}
	return out, nil
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}

func (uc *CategoryUseCase) record(ctx context.Context, actor entity.Actor, kind entity.ActivityKind, description string) {
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, kind, description, actor.ClientIP)
	}
}
