package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

func newGenerator(store *memStore, autoResolve bool, events ports.EventPublisher) *appinv.AlertGenerator {
	return appinv.NewAlertGenerator(&memProductRepo{store}, &memAlertRepo{store}, events, nil, autoResolve)
}

// Escenario B: descontar hasta agotar, generar una alerta OUT_OF_STOCK y no duplicarla.
func TestGenerate_AgotadoUnaSolaAlerta(t *testing.T) {
	store := newMemStore(newProduct("p1", "RON-01", 4, 5))
	ledger := appinv.NewStockLedger(memTxRunner{store})
	events := &spyPublisher{}
	gen := newGenerator(store, false, events)

	res, err := ledger.Discount(context.Background(), "p1", 4, employee, appinv.Memo{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.Quantity)
	assert.Equal(t, entity.StateOut, res.Product.State)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Created, 1)
	assert.Equal(t, entity.AlertOutOfStock, report.Created[0].Type)
	assert.Equal(t, "El producto Producto RON-01 se ha agotado completamente.", report.Created[0].Message)
	assert.Equal(t, []string{ports.EventAlertCreated}, events.types)

	report, err = gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Created, "la segunda pasada no debe crear alertas")
	assert.Len(t, store.alerts, 1)
}

func TestGenerate_BajoYAgotadoYDisponible(t *testing.T) {
	store := newMemStore(
		newProduct("p1", "A", 0, 5),
		newProduct("p2", "B", 3, 5),
		newProduct("p3", "C", 50, 5),
	)
	gen := newGenerator(store, false, nil)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Created, 2)
	assert.Equal(t, 2, report.Scanned)

	byProduct := map[string]entity.AlertType{}
	for _, a := range report.Created {
		byProduct[a.ProductID] = a.Type
	}
	assert.Equal(t, entity.AlertOutOfStock, byProduct["p1"])
	assert.Equal(t, entity.AlertLowStock, byProduct["p2"])
	assert.NotContains(t, byProduct, "p3")
}

// Tras resolver manualmente, una nueva pasada vuelve a alertar si la condición persiste.
func TestGenerate_ReabreTrasResolucionManual(t *testing.T) {
	store := newMemStore(newProduct("p1", "A", 0, 5))
	gen := newGenerator(store, false, nil)
	alerts := appinv.NewAlertUseCase(&memAlertRepo{store}, gen, &spyRecorder{})

	first, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	require.NoError(t, alerts.Resolve(context.Background(), first.Created[0].ID, employee))

	second, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Created, 1)
}

// Sin auto-resolución, reabastecer no cierra la alerta.
func TestGenerate_ResolucionManualPorDefecto(t *testing.T) {
	store := newMemStore(newProduct("p1", "A", 0, 5))
	ledger := appinv.NewStockLedger(memTxRunner{store})
	gen := newGenerator(store, false, nil)

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	_, err = ledger.Add(context.Background(), "p1", 30, employee, appinv.Memo{})
	require.NoError(t, err)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Resolved)
	assert.False(t, store.alerts[0].Resolved)
}

func TestGenerate_AutoResuelveCondicionSuperada(t *testing.T) {
	store := newMemStore(newProduct("p1", "A", 0, 5))
	ledger := appinv.NewStockLedger(memTxRunner{store})
	gen := newGenerator(store, true, nil)

	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	_, err = ledger.Add(context.Background(), "p1", 30, employee, appinv.Memo{})
	require.NoError(t, err)

	report, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Resolved)
	assert.True(t, store.alerts[0].Resolved)
}

// Un producto inactivo en cero no genera alertas.
func TestGenerate_IgnoraInactivos(t *testing.T) {
	p := newProduct("p1", "A", 0, 5)
	p.Active = false
	store := newMemStore(p)

	report, err := newGenerator(store, false, nil).Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Created)
}
