package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

func newLedger(products ...*entity.Product) (*appinv.StockLedger, *memStore) {
	store := newMemStore(products...)
	return appinv.NewStockLedger(memTxRunner{store}), store
}

// ──────────────────────────────────────────────────────────────────────────────
// Discount
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: 10 unidades, mínimo 5, descontar 6 → 4 LOW con movimiento OUT.
func TestDiscount_DisponibleAPorAgotarse(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 10, 5))
	require.Equal(t, entity.StateAvailable, store.product("p1").State)

	res, err := ledger.Discount(context.Background(), "p1", 6, employee, appinv.Memo{Reason: "venta"})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Product.Quantity)
	assert.Equal(t, entity.StateLow, res.Product.State)
	assert.NotNil(t, res.Product.LastExitAt, "la salida debe fijar la fecha de última salida")

	m := res.Movement
	assert.Equal(t, entity.MovementOut, m.Type)
	assert.Equal(t, 6, m.Quantity)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 4, m.QuantityAfter)
	assert.Equal(t, employee.UserID, m.UserID)
	assert.Equal(t, "venta", m.Reason)

	persisted := store.product("p1")
	assert.Equal(t, 4, persisted.Quantity)
	assert.Equal(t, entity.StateLow, persisted.State)
	assert.Equal(t, 1, store.movementCount())
}

// Escenario C: descontar más de lo disponible deja todo igual.
func TestDiscount_StockInsuficienteNoModifica(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 3, 5))

	_, err := ledger.Discount(context.Background(), "p1", 5, employee, appinv.Memo{})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient), "debe ser InsufficientStockError")
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, store.product("p1").Quantity)
	assert.Equal(t, entity.StateLow, store.product("p1").State)
	assert.Equal(t, 0, store.movementCount(), "no debe crearse movimiento")
}

func TestDiscount_CantidadInvalida(t *testing.T) {
	ledger, _ := newLedger(newProduct("p1", "RON-01", 3, 5))

	for _, amount := range []int{0, -1} {
		_, err := ledger.Discount(context.Background(), "p1", amount, employee, appinv.Memo{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestDiscount_ProductoInexistenteOInactivo(t *testing.T) {
	inactive := newProduct("p2", "OLD", 10, 5)
	inactive.Active = false
	ledger, _ := newLedger(inactive)

	_, err := ledger.Discount(context.Background(), "nope", 1, employee, appinv.Memo{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ledger.Discount(context.Background(), "p2", 1, employee, appinv.Memo{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDiscount_AuditorSinPermiso(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 10, 5))

	_, err := ledger.Discount(context.Background(), "p1", 1, auditor, appinv.Memo{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 10, store.product("p1").Quantity)
}

// Si falla la escritura del movimiento, la cantidad vuelve a su valor previo.
func TestDiscount_RollbackSiFallaMovimiento(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 10, 5))
	store.failMovementCreate = errors.New("db caída")

	_, err := ledger.Discount(context.Background(), "p1", 4, employee, appinv.Memo{})
	require.Error(t, err)

	assert.Equal(t, 10, store.product("p1").Quantity)
	assert.Equal(t, entity.StateAvailable, store.product("p1").State)
	assert.Equal(t, 0, store.movementCount())
}

// Descuentos concurrentes no pueden dejar la cantidad negativa ni perder actualizaciones.
func TestDiscount_ConcurrenteSerializado(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 10, 5))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Discount(context.Background(), "p1", 1, employee, appinv.Memo{})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 5, insufficient)
	assert.Equal(t, 0, store.product("p1").Quantity)
	assert.Equal(t, entity.StateOut, store.product("p1").State)
	assert.Equal(t, 10, store.movementCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Add / Return / Adjust
// ──────────────────────────────────────────────────────────────────────────────

// Escenario D: agregar 20 a un producto agotado.
func TestAdd_AgotadoADisponible(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 0, 5))

	res, err := ledger.Add(context.Background(), "p1", 20, employee, appinv.Memo{Reason: "compra"})
	require.NoError(t, err)

	assert.Equal(t, 20, res.Product.Quantity)
	assert.Equal(t, entity.StateAvailable, res.Product.State)
	assert.Nil(t, res.Product.LastExitAt, "una entrada no fija última salida")
	assert.Equal(t, entity.MovementIn, res.Movement.Type)
	assert.Equal(t, 20, res.Movement.Quantity)
	assert.Equal(t, 0, res.Movement.QuantityBefore)
	assert.Equal(t, 20, res.Movement.QuantityAfter)
	assert.Equal(t, 20, store.product("p1").Quantity)
}

func TestReturn_CreaMovimientoReturn(t *testing.T) {
	ledger, _ := newLedger(newProduct("p1", "RON-01", 2, 5))

	res, err := ledger.Return(context.Background(), "p1", 1, employee, appinv.Memo{Reason: "cliente devolvió"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementReturn, res.Movement.Type)
	assert.Equal(t, 3, res.Product.Quantity)
}

func TestAdjust_FijaConteo(t *testing.T) {
	ledger, _ := newLedger(newProduct("p1", "RON-01", 12, 5))

	res, err := ledger.Adjust(context.Background(), "p1", 4, employee, appinv.Memo{Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementAdjustment, res.Movement.Type)
	assert.Equal(t, 8, res.Movement.Quantity, "la cantidad del movimiento es la diferencia absoluta")
	assert.Equal(t, 12, res.Movement.QuantityBefore)
	assert.Equal(t, 4, res.Movement.QuantityAfter)
	assert.Equal(t, entity.StateLow, res.Product.State)
}

func TestAdjust_SinDiferenciaEsInvalido(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 12, 5))

	_, err := ledger.Adjust(context.Background(), "p1", 12, employee, appinv.Memo{Reason: "conteo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.movementCount())
}

func TestAdd_GuardaNotas(t *testing.T) {
	ledger, store := newLedger(newProduct("p1", "RON-01", 0, 5))

	res, err := ledger.Add(context.Background(), "p1", 6, employee,
		appinv.Memo{Reason: "compra", Notes: "factura 8812, caja golpeada"})
	require.NoError(t, err)
	assert.Equal(t, "compra", res.Movement.Reason)
	assert.Equal(t, "factura 8812, caja golpeada", res.Movement.Notes)
	assert.Equal(t, "factura 8812, caja golpeada", store.movements[0].Notes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Open (alta con stock inicial)
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_CreaProductoYMovimientoIN(t *testing.T) {
	ledger, store := newLedger()

	res, err := ledger.Open(context.Background(), newProduct("p1", "RON-01", 0, 5), 12, employee, appinv.Memo{Reason: "Stock inicial"})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Product.Quantity)
	assert.Equal(t, entity.StateAvailable, res.Product.State)
	require.NotNil(t, res.Movement)
	assert.Equal(t, entity.MovementIn, res.Movement.Type)
	assert.Equal(t, 12, res.Movement.Quantity)
	assert.Equal(t, 0, res.Movement.QuantityBefore)
	assert.Equal(t, 12, res.Movement.QuantityAfter)
	assert.Equal(t, employee.UserID, res.Movement.UserID)

	assert.Equal(t, 12, store.product("p1").Quantity)
	assert.Equal(t, 1, store.movementCount())
}

func TestOpen_SinStockNoCreaMovimiento(t *testing.T) {
	ledger, store := newLedger()

	res, err := ledger.Open(context.Background(), newProduct("p1", "RON-01", 0, 5), 0, employee, appinv.Memo{})
	require.NoError(t, err)
	assert.Nil(t, res.Movement)
	assert.Equal(t, entity.StateOut, res.Product.State)
	assert.True(t, store.has("p1"))
	assert.Equal(t, 0, store.movementCount())
}

// Si el movimiento inicial falla, el producto tampoco queda creado y se puede reintentar.
func TestOpen_FalloDelMovimientoNoDejaProducto(t *testing.T) {
	ledger, store := newLedger()
	store.failMovementCreate = errors.New("disco lleno")

	_, err := ledger.Open(context.Background(), newProduct("p1", "RON-01", 0, 5), 12, employee, appinv.Memo{})
	require.Error(t, err)
	assert.False(t, store.has("p1"))
	assert.Equal(t, 0, store.movementCount())

	store.failMovementCreate = nil
	res, err := ledger.Open(context.Background(), newProduct("p1", "RON-01", 0, 5), 12, employee, appinv.Memo{})
	require.NoError(t, err, "el reintento no debe chocar con un duplicado")
	assert.Equal(t, 12, res.Product.Quantity)
}

func TestOpen_AuditorNoPuede(t *testing.T) {
	ledger, store := newLedger()

	_, err := ledger.Open(context.Background(), newProduct("p1", "RON-01", 0, 5), 3, auditor, appinv.Memo{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, store.has("p1"))
}
