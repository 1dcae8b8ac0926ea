package ports

import (
	"context"
	"time"
)

// Tipos de evento publicados tras el commit de una operación.
const (
	EventStockChanged   = "stock.changed"
	EventAlertCreated   = "alert.created"
	EventUserRegistered = "user.registered"
	EventUserApproved   = "user.approved"
)

// Event evento de dominio serializable (JSON) hacia suscriptores externos.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher puerto de salida para eventos post-commit.
// Las implementaciones no deben bloquear la operación que originó el evento más allá del ctx.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher descarta los eventos; se usa cuando no hay broker configurado.
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// NewEvent construye un evento con marca de tiempo UTC.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
}
