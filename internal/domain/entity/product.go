package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductState estado de disponibilidad derivado de la cantidad (nunca se fija a mano).
type ProductState string

const (
	StateAvailable ProductState = "AVAILABLE" // disponible
	StateLow       ProductState = "LOW"       // por agotarse
	StateOut       ProductState = "OUT"       // agotado
)

// UnitMeasure unidad de medida del producto.
type UnitMeasure string

const (
	UnitUnit    UnitMeasure = "UNIT"
	UnitDozen   UnitMeasure = "DOZEN"
	UnitBox     UnitMeasure = "BOX"
	UnitPackage UnitMeasure = "PACKAGE"
	UnitKilo    UnitMeasure = "KILO"
	UnitGram    UnitMeasure = "GRAM"
	UnitLiter   UnitMeasure = "LITER"
	UnitMeter   UnitMeasure = "METER"
	UnitPair    UnitMeasure = "PAIR"
	UnitSet     UnitMeasure = "SET"
)

// DefaultMinQuantity mínimo por defecto al crear un producto.
const DefaultMinQuantity = 5

var validUnits = map[UnitMeasure]bool{
	UnitUnit: true, UnitDozen: true, UnitBox: true, UnitPackage: true, UnitKilo: true,
	UnitGram: true, UnitLiter: true, UnitMeter: true, UnitPair: true, UnitSet: true,
}

// Valid indica si la unidad pertenece al catálogo.
func (u UnitMeasure) Valid() bool { return validUnits[u] }

// Product representa un producto del inventario.
// Quantity es la cantidad en stock (>= 0) y solo cambia vía el ledger de movimientos.
type Product struct {
	ID            string
	Code          string // código único (SKU o referencia)
	Barcode       string // opcional
	Name          string
	Description   string
	CategoryID    string
	SubcategoryID string // vacío si no aplica
	SupplierID    string // vacío si no aplica
	Quantity      int
	MinQuantity   int
	Unit          UnitMeasure
	PurchasePrice decimal.Decimal
	Location      string // estante, pasillo, zona
	State         ProductState
	Active        bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastExitAt    *time.Time
}

// StockValue valor del stock a precio de compra.
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
