package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts  int             `json:"total_products"`
	Available      int             `json:"available"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // suma cantidad * precio de compra
	UnreadAlerts   int             `json:"unread_alerts"`
	MovementsToday int             `json:"movements_today"`
	PendingUsers   int             `json:"pending_users"` // solo para quien puede aprobar

	TopCategories  []CategoryCountDTO `json:"top_categories"`
	RecentActivity []ActivityResponse `json:"recent_activity"`
}

// CategoryCountDTO productos activos por categoría para el widget del dashboard.
type CategoryCountDTO struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon,omitempty"`
	Color      string `json:"color,omitempty"`
	Total      int    `json:"total"`
}
