package dto

import "time"

// StockOperationRequest body para POST /api/inventory/discount|add|return.
// Code acepta el código del producto o su código de barras.
type StockOperationRequest struct {
	Code     string `json:"code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

// AdjustStockRequest body para POST /api/inventory/adjust (conteo físico).
type AdjustStockRequest struct {
	Code            string `json:"code" validate:"required"`
	CountedQuantity int    `json:"counted_quantity" validate:"min=0"`
	Reason          string `json:"reason" validate:"required"`
	Notes           string `json:"notes"`
}

// StockOperationResponse resultado de una operación de stock.
type StockOperationResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	// AlertsCreated alertas nuevas generadas tras la operación (0 si el generador no corrió).
	AlertsCreated int `json:"alerts_created"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListRequest filtros de GET /api/inventory/movements.
type MovementListRequest struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	From      string `query:"from"` // YYYY-MM-DD
	PageRequest
}

// StockChangedPayload cuerpo del evento stock.changed.
type StockChangedPayload struct {
	ProductID     string `json:"product_id"`
	Code          string `json:"code"`
	MovementType  string `json:"movement_type"`
	QuantityAfter int    `json:"quantity_after"`
	State         string `json:"state"`
	UserID        string `json:"user_id"`
}
