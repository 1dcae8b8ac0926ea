package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	appinv "github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

var productCols = []string{
	"id", "code", "barcode", "name", "description", "category_id", "subcategory_id", "supplier_id",
	"quantity", "min_quantity", "unit", "purchase_price", "location", "state", "active", "created_by",
	"created_at", "updated_at", "last_exit_at",
}

type RepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	ctx  context.Context
	now  time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(s.T(), err)
	s.mock = mock
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.mock.Close()
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) productRows(id string, qty, min int, state string) *pgxmock.Rows {
	return pgxmock.NewRows(productCols).AddRow(
		id, "CERV-001", "7701234567890", "Cerveza Club", "", "cat-1", "", "",
		qty, min, "UNIT", decimal.NewFromInt(2500), "Bodega A", state, true, "",
		s.now, s.now, nil,
	)
}

func (s *RepositoryTestSuite) TestTxRunner_CommitsOnSuccess() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("p1").
		WillReturnRows(s.productRows("p1", 10, 5, "AVAILABLE"))
	s.mock.ExpectExec(`UPDATE products SET`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectExec(`INSERT INTO movements`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.mock.ExpectCommit()

	runner := NewTxRunner(s.mock)
	err := runner.Run(s.ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		p, err := products.GetForUpdate(s.ctx, "p1")
		if err != nil {
			return err
		}
		s.Require().NotNil(p)
		s.Equal(entity.StateAvailable, p.State)
		s.True(p.PurchasePrice.Equal(decimal.NewFromInt(2500)))

		p.Quantity -= 7
		if err := products.Save(s.ctx, p); err != nil {
			return err
		}
		s.Equal(entity.StateLow, p.State)
		return movements.Create(s.ctx, &entity.Movement{
			ID: "m1", ProductID: "p1", Type: entity.MovementOut, Quantity: 7,
			QuantityBefore: 10, QuantityAfter: 3, CreatedAt: s.now,
		})
	})

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RepositoryTestSuite) TestTxRunner_RollsBackOnError() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	s.mock.ExpectRollback()

	runner := NewTxRunner(s.mock)
	err := runner.Run(s.ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		p, err := products.GetForUpdate(s.ctx, "missing")
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return nil
	})

	s.ErrorIs(err, domain.ErrNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RepositoryTestSuite) TestTxRunner_BeginFails() {
	s.mock.ExpectBegin().WillReturnError(assert.AnError)

	runner := NewTxRunner(s.mock)
	err := runner.Run(s.ctx, func(repository.ProductRepository, repository.MovementRepository) error {
		s.Fail("no debe ejecutarse")
		return nil
	})

	s.ErrorIs(err, assert.AnError)
}

// Alta con stock inicial: insert del producto y movimiento IN en una sola tx.
func (s *RepositoryTestSuite) TestLedgerOpen_RollsBackProductWhenMovementFails() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO products`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.mock.ExpectExec(`INSERT INTO movements`).
		WillReturnError(assert.AnError)
	s.mock.ExpectRollback()

	ledger := appinv.NewStockLedger(NewTxRunner(s.mock))
	_, err := ledger.Open(s.ctx, &entity.Product{ID: "p1", Code: "RON-01", Name: "Ron", CategoryID: "cat-1", MinQuantity: 5},
		12, entity.Actor{UserID: "u1", Role: entity.RoleEmployee}, appinv.Memo{Reason: "Stock inicial"})

	s.ErrorIs(err, assert.AnError)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RepositoryTestSuite) TestLedgerOpen_CommitsProductAndMovement() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO products`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.mock.ExpectExec(`INSERT INTO movements`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.mock.ExpectCommit()

	ledger := appinv.NewStockLedger(NewTxRunner(s.mock))
	res, err := ledger.Open(s.ctx, &entity.Product{ID: "p1", Code: "RON-01", Name: "Ron", CategoryID: "cat-1", MinQuantity: 5},
		3, entity.Actor{UserID: "u1", Role: entity.RoleEmployee}, appinv.Memo{Reason: "Stock inicial"})

	s.Require().NoError(err)
	s.Equal(entity.StateLow, res.Product.State)
	s.Equal(3, res.Movement.QuantityAfter)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RepositoryTestSuite) TestProduct_FindByCodeOrBarcodePrefersCodeMatch() {
	s.mock.ExpectQuery(`WHERE LOWER\(code\) = LOWER\(\$1\) OR barcode = \$1\s+ORDER BY active DESC, \(LOWER\(code\) = LOWER\(\$1\)\) DESC`).
		WithArgs("cerv-001").
		WillReturnRows(s.productRows("p1", 10, 5, "AVAILABLE"))

	p, err := NewProductRepository(s.mock).FindByCodeOrBarcode(s.ctx, "cerv-001")

	s.Require().NoError(err)
	s.Equal("CERV-001", p.Code)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RepositoryTestSuite) TestProduct_GetByID_NotFoundReturnsNil() {
	s.mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	p, err := NewProductRepository(s.mock).GetByID(s.ctx, "nope")

	s.NoError(err)
	s.Nil(p)
}

func (s *RepositoryTestSuite) TestProduct_CreateDuplicateCode() {
	s.mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewProductRepository(s.mock).Create(s.ctx, &entity.Product{ID: "p1", Code: "CERV-001", Quantity: 0, MinQuantity: 5})

	s.ErrorIs(err, domain.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestProduct_CreateDerivesState() {
	p := &entity.Product{ID: "p1", Code: "CERV-001", Quantity: 0, MinQuantity: 5, State: entity.StateAvailable}
	s.mock.ExpectExec(`INSERT INTO products`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.NoError(NewProductRepository(s.mock).Create(s.ctx, p))
	s.Equal(entity.StateOut, p.State)
}

func (s *RepositoryTestSuite) TestProduct_FindActiveBelowThreshold() {
	rows := pgxmock.NewRows(productCols).
		AddRow("p1", "A", "", "Agotado", "", "cat-1", "", "", 0, 5, "UNIT", decimal.Zero, "", "OUT", true, "", s.now, s.now, nil).
		AddRow("p2", "B", "", "Bajo", "", "cat-1", "", "", 3, 5, "UNIT", decimal.Zero, "", "LOW", true, "", s.now, s.now, nil)
	s.mock.ExpectQuery(`WHERE active AND quantity <= min_quantity`).WillReturnRows(rows)

	list, err := NewProductRepository(s.mock).FindActiveBelowThreshold(s.ctx)

	s.NoError(err)
	s.Require().Len(list, 2)
	s.Equal(entity.StateOut, list[0].State)
	s.Equal(entity.StateLow, list[1].State)
}

func (s *RepositoryTestSuite) TestProduct_SetActiveMissing() {
	s.mock.ExpectExec(`UPDATE products SET active`).
		WithArgs("p9", false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewProductRepository(s.mock).SetActive(s.ctx, "p9", false)

	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAlert_CreateOpenDuplicate() {
	s.mock.ExpectExec(`INSERT INTO alerts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "alerts_open_unique"})

	err := NewAlertRepository(s.mock).Create(s.ctx, &entity.Alert{
		ID: "a1", ProductID: "p1", Type: entity.AlertOutOfStock, Message: "x", GeneratedAt: s.now,
	})

	s.ErrorIs(err, domain.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestAlert_ExistsUnresolved() {
	s.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("p1", "LOW_STOCK").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewAlertRepository(s.mock).ExistsUnresolved(s.ctx, "p1", entity.AlertLowStock)

	s.NoError(err)
	s.True(ok)
}

func (s *RepositoryTestSuite) TestAlert_ListUnresolvedWithoutLimit() {
	rows := pgxmock.NewRows([]string{"id", "product_id", "name", "type", "message", "generated_at", "read", "read_at", "resolved", "resolved_at"}).
		AddRow("a1", "p1", "Cerveza Club", "OUT_OF_STOCK", "agotado", s.now, false, nil, false, nil)
	s.mock.ExpectQuery(`WHERE NOT a.resolved ORDER BY a.generated_at DESC$`).WillReturnRows(rows)

	list, err := NewAlertRepository(s.mock).ListUnresolved(s.ctx, 0, 0)

	s.NoError(err)
	s.Require().Len(list, 1)
	s.Equal(entity.AlertOutOfStock, list[0].Type)
	s.Equal("Cerveza Club", list[0].ProductName)
	s.Nil(list[0].ReadAt)
}

func (s *RepositoryTestSuite) TestAlert_ResolveMissing() {
	s.mock.ExpectExec(`UPDATE alerts SET resolved = TRUE`).
		WithArgs("a9").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	s.ErrorIs(NewAlertRepository(s.mock).Resolve(s.ctx, "a9"), domain.ErrNotFound)
}

func (s *RepositoryTestSuite) TestMovement_ListFilters() {
	from := s.now.Add(-24 * time.Hour)
	rows := pgxmock.NewRows([]string{"id", "product_id", "type", "quantity", "quantity_before", "quantity_after", "reason", "notes", "user_id", "created_at"}).
		AddRow("m1", "p1", "OUT", 2, 5, 3, "venta", "", "u1", s.now)
	s.mock.ExpectQuery(`WHERE product_id = \$1 AND type = \$2 AND created_at >= \$3 ORDER BY created_at DESC LIMIT \$4`).
		WithArgs("p1", "OUT", from, 20).
		WillReturnRows(rows)

	list, err := NewMovementRepository(s.mock).List(s.ctx, repository.MovementFilter{
		ProductID: "p1", Type: entity.MovementOut, From: &from, Limit: 20,
	})

	s.NoError(err)
	s.Require().Len(list, 1)
	s.Equal(entity.MovementOut, list[0].Type)
	s.Equal(3, list[0].QuantityAfter)
}

func (s *RepositoryTestSuite) TestUser_CountActiveByRole() {
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE active AND role = \$1`).
		WithArgs(entity.RoleSuperAdmin).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	n, err := NewUserRepository(s.mock).CountActiveByRole(s.ctx, entity.RoleSuperAdmin)

	s.NoError(err)
	s.Equal(1, n)
}

func (s *RepositoryTestSuite) TestUser_ListInactive() {
	rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "first_name", "last_name", "role", "phone", "document",
		"approved", "approved_at", "approved_by", "active", "created_at", "updated_at"}).
		AddRow("u9", "viejo", "viejo@bar.co", "hash", "", "", "EMPLOYEE", "", "", true, nil, "", false, s.now, s.now)
	s.mock.ExpectQuery(`FROM users WHERE active = \$1 ORDER BY created_at DESC$`).
		WithArgs(false).
		WillReturnRows(rows)

	inactive := false
	list, err := NewUserRepository(s.mock).List(s.ctx, repository.UserFilter{Active: &inactive})

	s.NoError(err)
	s.Require().Len(list, 1)
	s.False(list[0].Active)
}

func (s *RepositoryTestSuite) TestUser_UpdateDuplicateDocument() {
	s.mock.ExpectExec(`UPDATE users SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_document_key"})

	err := NewUserRepository(s.mock).Update(s.ctx, &entity.User{ID: "u1", Email: "a@bar.co", Document: "1020", UpdatedAt: s.now})

	s.ErrorIs(err, domain.ErrDuplicate)
}

func (s *RepositoryTestSuite) TestUser_UpdateDuplicateEmail() {
	s.mock.ExpectExec(`UPDATE users SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := NewUserRepository(s.mock).Update(s.ctx, &entity.User{ID: "u1", Email: "a@bar.co", UpdatedAt: s.now})

	s.ErrorIs(err, domain.ErrEmailAlreadyExists)
}

func (s *RepositoryTestSuite) TestProduct_ListOnlyInactive() {
	s.mock.ExpectQuery(`FROM products WHERE NOT active ORDER BY name$`).
		WillReturnRows(pgxmock.NewRows(productCols))

	list, err := NewProductRepository(s.mock).List(s.ctx, repository.ProductFilter{OnlyInactive: true})

	s.NoError(err)
	s.Empty(list)
}

func (s *RepositoryTestSuite) TestAnalytics_StockStateCounts() {
	s.mock.ExpectQuery(`FROM products\s+WHERE active`).
		WillReturnRows(pgxmock.NewRows([]string{"total", "available", "low", "out"}).AddRow(10, 6, 3, 1))

	c, err := NewAnalyticsRepository(s.mock).GetStockStateCounts(s.ctx)

	s.NoError(err)
	s.Equal(repository.StockStateCounts{Total: 10, Available: 6, Low: 3, Out: 1}, c)
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.addRaw("active")
	w.add("category_id = ?", "c1")
	w.add("(name ILIKE ? OR code ILIKE ?)", "%x%")
	page := w.page(10, 20)

	assert.Equal(t, " WHERE active AND category_id = $1 AND (name ILIKE $2 OR code ILIKE $2)", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{"c1", "%x%", 10, 20}, w.args)
}

func TestWhereBuilder_Empty(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())
	assert.Empty(t, w.page(0, 0))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/sisbar?sslmode=disable", migrateURL("postgres://u:p@db:5432/sisbar?sslmode=disable"))
	assert.Equal(t, "pgx5://db/sisbar", migrateURL("postgresql://db/sisbar"))
}
