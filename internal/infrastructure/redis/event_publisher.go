package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
)

var _ ports.EventPublisher = (*EventPublisher)(nil)

// publisher subconjunto de *redis.Client que usa el adaptador.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

// EventPublisher publica eventos de dominio como JSON en un canal Pub/Sub de Redis.
type EventPublisher struct {
	client  publisher
	channel string
}

// NewEventPublisher construye el publicador sobre un cliente ya conectado.
func NewEventPublisher(client publisher, channel string) *EventPublisher {
	return &EventPublisher{client: client, channel: channel}
}

// Publish serializa el evento y lo envía al canal.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

// NewClient crea el cliente a partir de una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
