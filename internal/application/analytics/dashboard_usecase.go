// Package analytics contiene el resumen de inventario para el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sisbar-inventario/internal/application/dto"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

const (
	dashboardTopCategories = 5  // categorías en el widget
	dashboardRecentEntries = 10 // actividad reciente visible
)

// DashboardUseCase genera el resumen de inventario.
//
// Fuente de datos: repositorios de solo lectura. No bloquea filas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	alertRepo     repository.AlertRepository
	movementRepo  repository.MovementRepository
	userRepo      repository.UserRepository
	activityRepo  repository.ActivityRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	alertRepo repository.AlertRepository,
	movementRepo repository.MovementRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		alertRepo:     alertRepo,
		movementRepo:  movementRepo,
		userRepo:      userRepo,
		activityRepo:  activityRepo,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. conteo por estado        → Total/Available/LowStock/OutOfStock
//  2. valor de inventario      → InventoryValue
//  3. top categorías           → TopCategories
//  4. alertas no leídas + movimientos de hoy + actividad reciente
//
// PendingUsers solo se calcula si el actor puede aprobar usuarios.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor entity.Actor) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type countsResult struct {
		counts repository.StockStateCounts
		err    error
	}
	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	type categoriesResult struct {
		cats []repository.CategoryCount
		err  error
	}
	type feedResult struct {
		unread    int
		movements int
		recent    []*entity.ActivityRecord
		err       error
	}

	countsCh := make(chan countsResult, 1)
	valueCh := make(chan valueResult, 1)
	catsCh := make(chan categoriesResult, 1)
	feedCh := make(chan feedResult, 1)

	go func() {
		c, err := uc.analyticsRepo.GetStockStateCounts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetInventoryValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		cats, err := uc.analyticsRepo.GetTopCategories(ctx, dashboardTopCategories)
		catsCh <- categoriesResult{cats, err}
	}()
	go func() {
		var r feedResult
		if r.unread, r.err = uc.alertRepo.CountUnread(ctx); r.err != nil {
			feedCh <- r
			return
		}
		if r.movements, r.err = uc.movementRepo.CountSince(ctx, todayStart); r.err != nil {
			feedCh <- r
			return
		}
		r.recent, r.err = uc.activityRepo.ListRecent(ctx, dashboardRecentEntries)
		feedCh <- r
	}()

	counts := <-countsCh
	value := <-valueCh
	cats := <-catsCh
	feed := <-feedCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteo por estado: %w", counts.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor de inventario: %w", value.err)
	}
	if cats.err != nil {
		return nil, fmt.Errorf("dashboard: top categorías: %w", cats.err)
	}
	if feed.err != nil {
		return nil, fmt.Errorf("dashboard: alertas y actividad: %w", feed.err)
	}

	summary := &dto.DashboardSummaryDTO{
		TotalProducts:  counts.counts.Total,
		Available:      counts.counts.Available,
		LowStock:       counts.counts.Low,
		OutOfStock:     counts.counts.Out,
		InventoryValue: value.value.Round(2),
		UnreadAlerts:   feed.unread,
		MovementsToday: feed.movements,
		TopCategories:  make([]dto.CategoryCountDTO, 0, len(cats.cats)),
		RecentActivity: make([]dto.ActivityResponse, 0, len(feed.recent)),
	}
	for _, c := range cats.cats {
		summary.TopCategories = append(summary.TopCategories, dto.CategoryCountDTO{
			CategoryID: c.CategoryID, Name: c.Name, Icon: c.Icon, Color: c.Color, Total: c.Total,
		})
	}
	for _, r := range feed.recent {
		summary.RecentActivity = append(summary.RecentActivity, dto.ToActivityResponse(r))
	}

	if actor.CanApprove() {
		pending, err := uc.userRepo.CountPending(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: usuarios pendientes: %w", err)
		}
		summary.PendingUsers = pending
	}
	return summary, nil
}
