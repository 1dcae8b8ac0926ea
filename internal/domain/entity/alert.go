package entity

import "time"

// AlertType tipo de alerta de inventario.
type AlertType string

const (
	AlertOutOfStock   AlertType = "OUT_OF_STOCK"
	AlertLowStock     AlertType = "LOW_STOCK"
	AlertNeedsRestock AlertType = "NEEDS_RESTOCK"
)

// Alert alerta sobre un producto. A lo sumo una no resuelta por (producto, tipo).
type Alert struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura (join)
	Type        AlertType
	Message     string
	GeneratedAt time.Time
	Read        bool
	ReadAt      *time.Time
	Resolved    bool
	ResolvedAt  *time.Time
}
