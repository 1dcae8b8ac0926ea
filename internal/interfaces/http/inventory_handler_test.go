package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/sisbar-inventario/internal/interfaces/http"
)

var productCols = []string{
	"id", "code", "barcode", "name", "description", "category_id", "subcategory_id", "supplier_id",
	"quantity", "min_quantity", "unit", "purchase_price", "location", "state", "active", "created_by",
	"created_at", "updated_at", "last_exit_at",
}

func productRow(qty int, state string) *pgxmock.Rows {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(productCols).AddRow(
		"p1", "CERV-001", "7701234567890", "Cerveza Club", "", "cat-1", "", "",
		qty, 5, "UNIT", decimal.NewFromInt(2500), "", state, true, "", now, now, nil,
	)
}

// buildInventoryApp arma el stack completo (handler → caso de uso → ledger → repos postgres) sobre pgxmock.
func buildInventoryApp(t *testing.T) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	ledger := inventory.NewStockLedger(postgres.NewTxRunner(mock))
	uc := inventory.NewStockUseCase(ledger,
		postgres.NewProductRepository(mock), postgres.NewMovementRepository(mock),
		nil, nil, nil, nil)
	h := apphttp.NewInventoryHandler(uc)

	app := fiber.New()
	app.Post("/api/inventory/discount", apphttp.AuthMiddleware(testJWTSecret), h.Discount)
	return app, mock
}

func postDiscount(t *testing.T, app *fiber.App, role, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/discount", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDiscount_OK(t *testing.T) {
	app, mock := buildInventoryApp(t)
	mock.ExpectQuery(`WHERE LOWER\(code\) = LOWER\(\$1\) OR barcode = \$1`).
		WithArgs("7701234567890").
		WillReturnRows(productRow(10, "AVAILABLE"))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("p1").WillReturnRows(productRow(10, "AVAILABLE"))
	mock.ExpectExec(`UPDATE products SET`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO movements`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	resp := postDiscount(t, app, "EMPLOYEE", `{"code":"7701234567890","quantity":6,"reason":"venta"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Product struct {
			Quantity int    `json:"quantity"`
			State    string `json:"state"`
		} `json:"product"`
		Movement struct {
			Type           string `json:"type"`
			Quantity       int    `json:"quantity"`
			QuantityBefore int    `json:"quantity_before"`
			QuantityAfter  int    `json:"quantity_after"`
		} `json:"movement"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Product.Quantity)
	assert.Equal(t, "LOW", body.Product.State)
	assert.Equal(t, "OUT", body.Movement.Type)
	assert.Equal(t, 6, body.Movement.Quantity)
	assert.Equal(t, 10, body.Movement.QuantityBefore)
	assert.Equal(t, 4, body.Movement.QuantityAfter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscount_StockInsuficiente409(t *testing.T) {
	app, mock := buildInventoryApp(t)
	mock.ExpectQuery(`OR barcode = \$1`).WithArgs("CERV-001").WillReturnRows(productRow(2, "LOW"))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("p1").WillReturnRows(productRow(2, "LOW"))
	mock.ExpectRollback()

	resp := postDiscount(t, app, "EMPLOYEE", `{"code":"CERV-001","quantity":5}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.EqualValues(t, 2, body["available"])
	assert.EqualValues(t, 5, body["requested"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscount_ProductoNoEncontrado404(t *testing.T) {
	app, mock := buildInventoryApp(t)
	mock.ExpectQuery(`OR barcode = \$1`).WithArgs("NOPE").WillReturnError(pgx.ErrNoRows)

	resp := postDiscount(t, app, "EMPLOYEE", `{"code":"NOPE","quantity":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDiscount_AuditorProhibido403(t *testing.T) {
	app, mock := buildInventoryApp(t)
	mock.ExpectQuery(`OR barcode = \$1`).WithArgs("CERV-001").WillReturnRows(productRow(10, "AVAILABLE"))

	resp := postDiscount(t, app, "AUDITOR", `{"code":"CERV-001","quantity":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscount_CantidadInvalida400(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postDiscount(t, app, "EMPLOYEE", `{"code":"CERV-001","quantity":0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDiscount_CuerpoInvalido400(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postDiscount(t, app, "EMPLOYEE", `{"code":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
