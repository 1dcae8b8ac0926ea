package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

const (
	defaultCountry = "Colombia"
	defaultRating  = 3
)

// SupplierUseCase proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	activity ports.ActivityRecorder
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, activity ports.ActivityRecorder) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, activity: activity}
}

// Create registra un proveedor. Nombre y NIT duplicados los rechaza la BD con ErrDuplicate.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest, actor entity.Actor) (*dto.SupplierResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	s := &entity.Supplier{ID: uuid.New().String(), Active: true, CreatedAt: now}
	if err := fillSupplier(s, in); err != nil {
		return nil, err
	}
	s.UpdatedAt = now
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityCreate, "Creó proveedor "+s.Name)
	resp := dto.ToSupplierResponse(s)
	return &resp, nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest, actor entity.Actor) (*dto.SupplierResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fillSupplier(s, in); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit, "Editó proveedor "+s.Name)
	resp := dto.ToSupplierResponse(s)
	return &resp, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSupplierResponse(s)
	return &resp, nil
}

// List proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, includeInactive bool) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return out, nil
}

// SetActive desactiva o restaura un proveedor.
func (uc *SupplierUseCase) SetActive(ctx context.Context, id string, active bool, actor entity.Actor) error {
	if !actor.CanDelete() {
		return domain.ErrForbidden
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	s.Active = active
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return err
	}
	if active {
		uc.record(ctx, actor, entity.ActivityEdit, "Restauró proveedor "+s.Name)
	} else {
		uc.record(ctx, actor, entity.ActivityDelete, "Desactivó proveedor "+s.Name)
	}
	return nil
}

func fillSupplier(s *entity.Supplier, in dto.SupplierRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	rating := in.Rating
	if rating == 0 {
		rating = defaultRating
	}
	if rating < 1 || rating > 5 {
		return domain.ErrInvalidInput
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = defaultCountry
	}
	s.Name = name
	s.TaxID = strings.TrimSpace(in.TaxID)
	s.Contact = in.Contact
	s.Phone = in.Phone
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	s.Address = in.Address
	s.City = in.City
	s.Country = country
	s.Website = in.Website
	s.Rating = rating
	s.Notes = in.Notes
	return nil
}

func (uc *SupplierUseCase) get(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SupplierUseCase) record(ctx context.Context, actor entity.Actor, kind entity.ActivityKind, description string) {
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, kind, description, actor.ClientIP)
	}
}
