package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	stockstate "github.com/jhoicas/sisbar-inventario/internal/domain/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

// GenerateReport resumen de una pasada del generador.
type GenerateReport struct {
	Created  []*entity.Alert
	Resolved int
	Scanned  int
}

// AlertGenerator recorre los productos activos bajo el mínimo y crea alertas
// OUT_OF_STOCK / LOW_STOCK, a lo sumo una no resuelta por (producto, tipo).
type AlertGenerator struct {
	productRepo repository.ProductRepository
	alertRepo   repository.AlertRepository
	events      ports.EventPublisher
	log         *logger.Logger
	autoResolve bool
	now         func() time.Time
}

// NewAlertGenerator construye el generador. events y log pueden ser nil.
func NewAlertGenerator(
	productRepo repository.ProductRepository,
	alertRepo repository.AlertRepository,
	events ports.EventPublisher,
	log *logger.Logger,
	autoResolve bool,
) *AlertGenerator {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AlertGenerator{
		productRepo: productRepo,
		alertRepo:   alertRepo,
		events:      events,
		log:         log.Component("alert_generator"),
		autoResolve: autoResolve,
		now:         time.Now,
	}
}

// Generate ejecuta una pasada completa. Nunca elimina alertas.
func (g *AlertGenerator) Generate(ctx context.Context) (GenerateReport, error) {
	var report GenerateReport

	products, err := g.productRepo.FindActiveBelowThreshold(ctx)
	if err != nil {
		return report, fmt.Errorf("productos bajo mínimo: %w", err)
	}
	report.Scanned = len(products)

	for _, p := range products {
		alertType, ok := stockstate.AlertTypeFor(p)
		if !ok {
			continue
		}
		alert, err := g.ensureAlert(ctx, p, alertType)
		if err != nil {
			return report, err
		}
		if alert != nil {
			report.Created = append(report.Created, alert)
		}
	}

	if g.autoResolve {
		n, err := g.resolveCleared(ctx)
		if err != nil {
			return report, err
		}
		report.Resolved = n
	}

	if len(report.Created) > 0 || report.Resolved > 0 {
		g.log.Info().
			Int("created", len(report.Created)).
			Int("resolved", report.Resolved).
			Int("scanned", report.Scanned).
			Msg("alertas generadas")
	}
	return report, nil
}

// ensureAlert crea la alerta si no existe una no resuelta del mismo tipo. Devuelve nil si ya existía.
func (g *AlertGenerator) ensureAlert(ctx context.Context, p *entity.Product, alertType entity.AlertType) (*entity.Alert, error) {
	exists, err := g.alertRepo.ExistsUnresolved(ctx, p.ID, alertType)
	if err != nil {
		return nil, fmt.Errorf("verificar alerta %s de %s: %w", alertType, p.Code, err)
	}
	if exists {
		return nil, nil
	}

	alert := &entity.Alert{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Type:        alertType,
		Message:     stockstate.AlertMessage(p, alertType),
		GeneratedAt: g.now(),
	}
	if err := g.alertRepo.Create(ctx, alert); err != nil {
		// El índice único parcial rechaza la alerta si otra pasada concurrente ya la creó
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nil
		}
		return nil, fmt.Errorf("crear alerta %s de %s: %w", alertType, p.Code, err)
	}

	if err := g.events.Publish(ctx, ports.NewEvent(ports.EventAlertCreated, AlertEventPayload{
		AlertID:   alert.ID,
		ProductID: p.ID,
		Type:      string(alertType),
		Message:   alert.Message,
	})); err != nil {
		g.log.Warn().Err(err).Str("alert_id", alert.ID).Msg("no se pudo publicar alert.created")
	}
	return alert, nil
}

// resolveCleared marca resueltas las alertas abiertas cuya condición ya no se cumple.
func (g *AlertGenerator) resolveCleared(ctx context.Context) (int, error) {
	open, err := g.alertRepo.ListUnresolved(ctx, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("listar alertas abiertas: %w", err)
	}
	resolved := 0
	for _, a := range open {
		p, err := g.productRepo.GetByID(ctx, a.ProductID)
		if err != nil {
			return resolved, fmt.Errorf("producto de alerta %s: %w", a.ID, err)
		}
		if stockstate.ConditionHolds(p, a.Type) {
			continue
		}
		if err := g.alertRepo.Resolve(ctx, a.ID); err != nil {
			return resolved, fmt.Errorf("resolver alerta %s: %w", a.ID, err)
		}
		resolved++
	}
	return resolved, nil
}

// AlertEventPayload cuerpo del evento alert.created.
type AlertEventPayload struct {
	AlertID   string `json:"alert_id"`
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}
