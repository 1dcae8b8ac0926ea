package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, COALESCE(barcode, ''), name, description, category_id,
	COALESCE(subcategory_id::text, ''), COALESCE(supplier_id::text, ''), quantity, min_quantity, unit,
	purchase_price, location, state, active, COALESCE(created_by::text, ''), created_at, updated_at, last_exit_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su estado derivado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	inventory.ApplyState(p)
	query := `
		INSERT INTO products (id, code, barcode, name, description, category_id, subcategory_id, supplier_id,
			quantity, min_quantity, unit, purchase_price, location, state, active, created_by, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid,
			$9, $10, $11, $12, $13, $14, $15, NULLIF($16, '')::uuid, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Barcode, p.Name, p.Description, p.CategoryID, p.SubcategoryID, p.SupplierID,
		p.Quantity, p.MinQuantity, string(p.Unit), p.PurchasePrice, p.Location, string(p.State), p.Active,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// FindByCodeOrBarcode busca por código (sin distinguir mayúsculas) o código de barras exacto.
// Orden de preferencia: activo antes que inactivo; a igualdad, coincidencia por código antes que por barras.
func (r *ProductRepo) FindByCodeOrBarcode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, findByCodeOrBarcodeQuery, code)
}

const findByCodeOrBarcodeQuery = `SELECT ` + productColumns + ` FROM products
		WHERE LOWER(code) = LOWER($1) OR barcode = $1
		ORDER BY active DESC, (LOWER(code) = LOWER($1)) DESC, created_at
		LIMIT 1`

// Save persiste todos los campos mutables y recalcula el estado.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	inventory.ApplyState(p)
	query := `
		UPDATE products SET barcode = NULLIF($2, ''), name = $3, description = $4, category_id = $5,
			subcategory_id = NULLIF($6, '')::uuid, supplier_id = NULLIF($7, '')::uuid,
			quantity = $8, min_quantity = $9, unit = $10, purchase_price = $11, location = $12,
			state = $13, active = $14, updated_at = $15, last_exit_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Barcode, p.Name, p.Description, p.CategoryID, p.SubcategoryID, p.SupplierID,
		p.Quantity, p.MinQuantity, string(p.Unit), p.PurchasePrice, p.Location,
		string(p.State), p.Active, p.UpdatedAt, p.LastExitAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con filtros, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w whereBuilder
	switch {
	case f.OnlyInactive:
		w.addRaw("NOT active")
	case !f.IncludeInactive:
		w.addRaw("active")
	}
	if f.CategoryID != "" {
		w.add("category_id = ?", f.CategoryID)
	}
	if f.State != "" {
		w.add("state = ?", string(f.State))
	}
	if f.Search != "" {
		w.add("(code ILIKE ? OR barcode ILIKE ? OR name ILIKE ? OR description ILIKE ?)", "%"+f.Search+"%")
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY name`
	query += w.page(f.Limit, f.Offset)
	return r.getMany(ctx, query, w.args...)
}

// FindActiveBelowThreshold productos activos con cantidad <= mínimo, agotados primero.
func (r *ProductRepo) FindActiveBelowThreshold(ctx context.Context) ([]*entity.Product, error) {
	return r.getMany(ctx, `SELECT `+productColumns+` FROM products
		WHERE active AND quantity <= min_quantity
		ORDER BY quantity, name`)
}

// CountActiveByCategory productos activos de la categoría.
func (r *ProductRepo) CountActiveByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active AND category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// SetActive soft delete / restauración.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) getMany(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p           entity.Product
		unit, state string
	)
	err := row.Scan(
		&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Description, &p.CategoryID,
		&p.SubcategoryID, &p.SupplierID, &p.Quantity, &p.MinQuantity, &unit,
		&p.PurchasePrice, &p.Location, &state, &p.Active, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.LastExitAt,
	)
	if err != nil {
		return nil, err
	}
	p.Unit = entity.UnitMeasure(unit)
	p.State = entity.ProductState(state)
	return &p, nil
}
