package dto

import "time"

// AlertResponse salida de una alerta de inventario.
type AlertResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"`
	Type        string     `json:"type"`
	Message     string     `json:"message"`
	GeneratedAt time.Time  `json:"generated_at"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// AlertListResponse alertas no resueltas con contador de no leídas.
type AlertListResponse struct {
	Items  []AlertResponse `json:"items"`
	Unread int             `json:"unread"`
	Page   PageResponse    `json:"page"`
}

// GenerateAlertsResponse resultado de POST /api/alerts/generate.
type GenerateAlertsResponse struct {
	Created  int `json:"created"`
	Resolved int `json:"resolved"`
	Scanned  int `json:"scanned"`
}
