package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReport datos ya resueltos para el reporte de inventario.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy string
	Rows        []InventoryReportRow
	TotalUnits  int
	TotalValue  decimal.Decimal
	LowCount    int
	OutCount    int
}

// InventoryReportRow una línea por producto.
type InventoryReportRow struct {
	Code        string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int
	Unit        string
	State       string
	UnitPrice   decimal.Decimal
	Value       decimal.Decimal
}

// InventoryPDFGenerator puerto de salida para renderizar el reporte.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *InventoryReport) ([]byte, error)
}
