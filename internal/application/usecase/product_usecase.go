package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad solo cambia vía StockLedger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	txRunner     inventory.TxRunner
	ledger       *inventory.StockLedger
	activity     ports.ActivityRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
	activity ports.ActivityRecorder,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		txRunner:     txRunner,
		ledger:       ledger,
		activity:     activity,
	}
}

// Create da de alta el producto; el stock inicial entra como movimiento IN en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor entity.Actor) (*dto.ProductResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || in.Quantity < 0 || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := entity.UnitMeasure(strings.ToUpper(in.Unit))
	if unit == "" {
		unit = entity.UnitUnit
	}
	if !unit.Valid() {
		return nil, domain.ErrInvalidInput
	}
	minQty := entity.DefaultMinQuantity
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		minQty = *in.MinQuantity
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.SubcategoryID, in.SupplierID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          code,
		Barcode:       strings.TrimSpace(in.Barcode),
		Name:          name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		SupplierID:    in.SupplierID,
		MinQuantity:   minQty,
		Unit:          unit,
		PurchasePrice: in.PurchasePrice,
		Location:      in.Location,
		Active:        true,
		CreatedBy:     actor.UserID,
	}
	res, err := uc.ledger.Open(ctx, product, in.Quantity, actor, inventory.Memo{Reason: "Stock inicial"})
	if err != nil {
		return nil, err
	}
	product = res.Product
	uc.record(ctx, actor, entity.ActivityCreate, "Creó producto "+product.Name)

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID (incluye inactivos).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update modifica datos descriptivos y el mínimo. La fila se bloquea para no pisar un movimiento concurrente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actor entity.Actor) (*dto.ProductResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := uc.applyUpdate(ctx, product, in); err != nil {
			return err
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Save(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit, "Editó producto "+updated.Name)
	resp := dto.ToProductResponse(updated)
	return &resp, nil
}

func (uc *ProductUseCase) applyUpdate(ctx context.Context, p *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Barcode != nil {
		p.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return domain.ErrInvalidInput
		}
		p.MinQuantity = *in.MinQuantity
	}
	if in.Unit != nil {
		unit := entity.UnitMeasure(strings.ToUpper(*in.Unit))
		if !unit.Valid() {
			return domain.ErrInvalidInput
		}
		p.Unit = unit
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		p.SubcategoryID = *in.SubcategoryID
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
	if in.CategoryID != nil || in.SubcategoryID != nil || in.SupplierID != nil {
		return uc.checkRefs(ctx, p.CategoryID, p.SubcategoryID, p.SupplierID)
	}
	return nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	state := entity.ProductState(strings.ToUpper(in.State))
	switch state {
	case "", entity.StateAvailable, entity.StateLow, entity.StateOut:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CategoryID:      in.CategoryID,
		State:           state,
		Search:          strings.TrimSpace(in.Search),
		IncludeInactive: in.IncludeInactive,
		Limit:           in.Limit,
		Offset:          in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  in.Response(),
	}, nil
}

// SetActive desactiva (soft delete) o restaura un producto. Requiere ADMIN o SUPER_ADMIN.
func (uc *ProductUseCase) SetActive(ctx context.Context, id string, active bool, actor entity.Actor) error {
	if !actor.CanDelete() {
		return domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	if active {
		uc.record(ctx, actor, entity.ActivityEdit, "Restauró producto "+product.Name)
	} else {
		uc.record(ctx, actor, entity.ActivityDelete, "Desactivó producto "+product.Name)
	}
	return nil
}

// checkRefs valida categoría activa, subcategoría de esa categoría y proveedor existente.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, subcategoryID, supplierID string) error {
	if categoryID == "" {
		return domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if cat == nil || !cat.Active {
		return domain.ErrInvalidInput
	}
	if subcategoryID != "" {
		sub, err := uc.categoryRepo.GetSubcategory(ctx, subcategoryID)
		if err != nil {
			return err
		}
		if sub == nil || sub.CategoryID != categoryID {
			return domain.ErrInvalidInput
		}
	}
	if supplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func (uc *ProductUseCase) record(ctx context.Context, actor entity.Actor, kind entity.ActivityKind, description string) {
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, kind, description, actor.ClientIP)
	}
}
