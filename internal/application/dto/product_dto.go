package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad inicial genera un movimiento IN.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Barcode       string          `json:"barcode" validate:"omitempty,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id" validate:"required,uuid"`
	SubcategoryID string          `json:"subcategory_id"`
	SupplierID    string          `json:"supplier_id"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	MinQuantity   *int            `json:"min_quantity" validate:"omitempty,min=0"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Location      string          `json:"location"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity: solo cambia vía ledger).
type UpdateProductRequest struct {
	Barcode       *string          `json:"barcode"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"category_id"`
	SubcategoryID *string          `json:"subcategory_id"`
	SupplierID    *string          `json:"supplier_id"`
	MinQuantity   *int             `json:"min_quantity"`
	Unit          *string          `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Location      *string          `json:"location"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	CategoryID      string `query:"category_id"`
	State           string `query:"state"`
	Search          string `query:"q"`
	IncludeInactive bool   `query:"include_inactive"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Barcode       string          `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	SupplierID    string          `json:"supplier_id,omitempty"`
	Quantity      int             `json:"quantity"`
	MinQuantity   int             `json:"min_quantity"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	StockValue    decimal.Decimal `json:"stock_value"`
	Location      string          `json:"location,omitempty"`
	State         string          `json:"state"`
	Active        bool            `json:"active"`
	LastExitAt    *time.Time      `json:"last_exit_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
