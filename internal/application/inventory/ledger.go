package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	stockstate "github.com/jhoicas/sisbar-inventario/internal/domain/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// LedgerResult resultado de una operación del ledger: producto ya reclasificado y movimiento creado.
type LedgerResult struct {
	Product  *entity.Product
	Movement *entity.Movement
}

// StockLedger único punto de cambio de Product.Quantity.
// Cada operación corre en una transacción (TxRunner) con la fila del producto bloqueada
// (SELECT FOR UPDATE) y crea exactamente un Movement en la misma tx.
type StockLedger struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner, now: time.Now}
}

// Memo texto libre que acompaña al movimiento.
type Memo struct {
	Reason string
	Notes  string
}

// mutation calcula la nueva cantidad a partir del producto bloqueado.
type mutation func(p *entity.Product) (after int, err error)

// Discount descuenta amount unidades. amount > cantidad actual → *domain.InsufficientStockError.
func (l *StockLedger) Discount(ctx context.Context, productID string, amount int, actor entity.Actor, memo Memo) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.apply(ctx, productID, entity.MovementOut, actor, memo, func(p *entity.Product) (int, error) {
		if amount > p.Quantity {
			return 0, &domain.InsufficientStockError{ProductCode: p.Code, Requested: amount, Available: p.Quantity}
		}
		return p.Quantity - amount, nil
	})
}

// Add suma amount unidades (entrada de mercancía).
func (l *StockLedger) Add(ctx context.Context, productID string, amount int, actor entity.Actor, memo Memo) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.apply(ctx, productID, entity.MovementIn, actor, memo, func(p *entity.Product) (int, error) {
		return p.Quantity + amount, nil
	})
}

// Return reingresa amount unidades devueltas por un cliente.
func (l *StockLedger) Return(ctx context.Context, productID string, amount int, actor entity.Actor, memo Memo) (*LedgerResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.apply(ctx, productID, entity.MovementReturn, actor, memo, func(p *entity.Product) (int, error) {
		return p.Quantity + amount, nil
	})
}

// Adjust fija la cantidad al conteo físico. Sin diferencia con el stock actual → ErrInvalidInput.
func (l *StockLedger) Adjust(ctx context.Context, productID string, counted int, actor entity.Actor, memo Memo) (*LedgerResult, error) {
	if counted < 0 {
		return nil, domain.ErrInvalidInput
	}
	return l.apply(ctx, productID, entity.MovementAdjustment, actor, memo, func(p *entity.Product) (int, error) {
		if counted == p.Quantity {
			return 0, domain.ErrInvalidInput
		}
		return counted, nil
	})
}

func (l *StockLedger) apply(
	ctx context.Context,
	productID string,
	movType entity.MovementType,
	actor entity.Actor,
	memo Memo,
	mutate mutation,
) (*LedgerResult, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Permisos antes de abrir la transacción
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}

	var result *LedgerResult
	err := l.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || !product.Active {
			return domain.ErrNotFound
		}

		before := product.Quantity
		after, err := mutate(product)
		if err != nil {
			return err
		}

		now := l.now()
		product.Quantity = after
		product.UpdatedAt = now
		if movType == entity.MovementOut {
			product.LastExitAt = &now
		}
		stockstate.ApplyState(product)
		if err := productRepo.Save(ctx, product); err != nil {
			return err
		}

		mov := newMovement(product.ID, movType, before, after, memo, actor, now)
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &LedgerResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Open da de alta un producto nuevo con su stock inicial. El insert y el movimiento IN
// van en la misma transacción: si falla el movimiento, el producto no queda creado.
// Con initial 0 no se crea movimiento y LedgerResult.Movement es nil.
func (l *StockLedger) Open(ctx context.Context, product *entity.Product, initial int, actor entity.Actor, memo Memo) (*LedgerResult, error) {
	if product == nil || product.ID == "" || initial < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}

	var result *LedgerResult
	err := l.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		now := l.now()
		p := *product
		p.Quantity = initial
		p.CreatedAt, p.UpdatedAt = now, now
		stockstate.ApplyState(&p)
		if err := productRepo.Create(ctx, &p); err != nil {
			return err
		}
		result = &LedgerResult{Product: &p}
		if initial == 0 {
			return nil
		}
		mov := newMovement(p.ID, entity.MovementIn, 0, initial, memo, actor, now)
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result.Movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func newMovement(productID string, movType entity.MovementType, before, after int, memo Memo, actor entity.Actor, at time.Time) *entity.Movement {
	return &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		Type:           movType,
		Quantity:       abs(after - before),
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         memo.Reason,
		Notes:          memo.Notes,
		UserID:         actor.UserID,
		CreatedAt:      at,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
