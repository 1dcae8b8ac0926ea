package inventory

import (
	"context"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// AlertUseCase acciones de usuario sobre alertas: listar, marcar leída, resolver.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
	generator *AlertGenerator
	activity  ports.ActivityRecorder
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(alertRepo repository.AlertRepository, generator *AlertGenerator, activity ports.ActivityRecorder) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo, generator: generator, activity: activity}
}

// ListUnresolved alertas abiertas, más recientes primero, con el contador de no leídas.
func (uc *AlertUseCase) ListUnresolved(ctx context.Context, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.DefaultPage()
	list, err := uc.alertRepo.ListUnresolved(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.alertRepo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ToAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items:  items,
		Unread: unread,
		Page:   page.Response(),
	}, nil
}

// UnreadCount número de alertas no resueltas y no leídas (badge del menú).
func (uc *AlertUseCase) UnreadCount(ctx context.Context) (int, error) {
	return uc.alertRepo.CountUnread(ctx)
}

// MarkRead marca la alerta como leída. Idempotente.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.alertRepo.MarkRead(ctx, id)
}

// Resolve cierra la alerta; a partir de ahí el generador puede volver a crear una del mismo tipo.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string, actor entity.Actor) error {
	if !actor.CanManageInventory() {
		return domain.ErrForbidden
	}
	alert, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if alert.Resolved {
		return nil
	}
	if err := uc.alertRepo.Resolve(ctx, id); err != nil {
		return err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, entity.ActivityEdit, "Resolvió alerta: "+alert.Message, actor.ClientIP)
	}
	return nil
}

// Generate ejecuta el generador bajo demanda.
func (uc *AlertUseCase) Generate(ctx context.Context, actor entity.Actor) (*dto.GenerateAlertsResponse, error) {
	if !actor.CanManageInventory() {
		return nil, domain.ErrForbidden
	}
	report, err := uc.generator.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.GenerateAlertsResponse{
		Created:  len(report.Created),
		Resolved: report.Resolved,
		Scanned:  report.Scanned,
	}, nil
}

func (uc *AlertUseCase) get(ctx context.Context, id string) (*entity.Alert, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	return alert, nil
}
