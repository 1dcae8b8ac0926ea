package dto

import "time"

// ActivityResponse entrada del historial de actividad.
type ActivityResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	ClientIP    string    `json:"client_ip,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
