package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

// StockUseCase operaciones de stock por código o código de barras.
// Orden: ledger (tx) → actividad → generador de alertas → evento post-commit.
// Solo el ledger puede fallar la operación; el resto se registra en el log.
type StockUseCase struct {
	ledger      *StockLedger
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	generator   *AlertGenerator
	activity    ports.ActivityRecorder
	events      ports.EventPublisher
	log         *logger.Logger
}

// NewStockUseCase construye el caso de uso. generator puede ser nil para no evaluar alertas tras descontar.
func NewStockUseCase(
	ledger *StockLedger,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	generator *AlertGenerator,
	activity ports.ActivityRecorder,
	events ports.EventPublisher,
	log *logger.Logger,
) *StockUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		ledger:      ledger,
		productRepo: productRepo,
		movRepo:     movRepo,
		generator:   generator,
		activity:    activity,
		events:      events,
		log:         log.Component("stock"),
	}
}

// DiscountByCode descuenta unidades del producto activo con ese código o código de barras.
func (uc *StockUseCase) DiscountByCode(ctx context.Context, in dto.StockOperationRequest, actor entity.Actor) (*dto.StockOperationResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.resolve(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	res, err := uc.ledger.Discount(ctx, product.ID, in.Quantity, actor, Memo{Reason: in.Reason, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityDiscount,
		fmt.Sprintf("Descontó %d unidades de %s", in.Quantity, res.Product.Name))

	resp := uc.afterCommit(ctx, res, actor)
	if uc.generator != nil {
		report, err := uc.generator.Generate(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Str("product_id", res.Product.ID).Msg("generación de alertas falló tras descuento")
		} else {
			resp.AlertsCreated = len(report.Created)
		}
	}
	return resp, nil
}

// AddByCode ingresa unidades al producto (entrada de mercancía).
func (uc *StockUseCase) AddByCode(ctx context.Context, in dto.StockOperationRequest, actor entity.Actor) (*dto.StockOperationResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.resolve(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	res, err := uc.ledger.Add(ctx, product.ID, in.Quantity, actor, Memo{Reason: in.Reason, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit,
		fmt.Sprintf("Agregó %d unidades a %s", in.Quantity, res.Product.Name))
	return uc.afterCommit(ctx, res, actor), nil
}

// ReturnByCode reingresa unidades devueltas.
func (uc *StockUseCase) ReturnByCode(ctx context.Context, in dto.StockOperationRequest, actor entity.Actor) (*dto.StockOperationResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.resolve(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	res, err := uc.ledger.Return(ctx, product.ID, in.Quantity, actor, Memo{Reason: in.Reason, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit,
		fmt.Sprintf("Registró devolución de %d unidades de %s", in.Quantity, res.Product.Name))
	return uc.afterCommit(ctx, res, actor), nil
}

// AdjustByCode fija la cantidad al conteo físico.
func (uc *StockUseCase) AdjustByCode(ctx context.Context, in dto.AdjustStockRequest, actor entity.Actor) (*dto.StockOperationResponse, error) {
	product, err := uc.resolve(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	res, err := uc.ledger.Adjust(ctx, product.ID, in.CountedQuantity, actor, Memo{Reason: in.Reason, Notes: in.Notes})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, actor, entity.ActivityEdit,
		fmt.Sprintf("Ajustó %s de %d a %d unidades", res.Product.Name, res.Movement.QuantityBefore, res.Movement.QuantityAfter))
	return uc.afterCommit(ctx, res, actor), nil
}

// Lookup busca un producto activo por código o código de barras (lector de barras).
func (uc *StockUseCase) Lookup(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// ListMovements historial del ledger, más reciente primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	movType := entity.MovementType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if movType != "" && !movType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      movType,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &from
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return out, nil
}

func (uc *StockUseCase) resolve(ctx context.Context, code string) (*entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.FindByCodeOrBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *StockUseCase) record(ctx context.Context, actor entity.Actor, kind entity.ActivityKind, description string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, actor.UserID, kind, description, actor.ClientIP)
}

func (uc *StockUseCase) afterCommit(ctx context.Context, res *LedgerResult, actor entity.Actor) *dto.StockOperationResponse {
	err := uc.events.Publish(ctx, ports.NewEvent(ports.EventStockChanged, dto.StockChangedPayload{
		ProductID:     res.Product.ID,
		Code:          res.Product.Code,
		MovementType:  string(res.Movement.Type),
		QuantityAfter: res.Product.Quantity,
		State:         string(res.Product.State),
		UserID:        actor.UserID,
	}))
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", res.Product.ID).Msg("no se pudo publicar stock.changed")
	}
	return &dto.StockOperationResponse{
		Product:  dto.ToProductResponse(res.Product),
		Movement: dto.ToMovementResponse(res.Movement),
	}
}
