package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/domain"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/repository"
)

// maxReportRows límite de productos por reporte.
const maxReportRows = 5000

// ExportUseCase genera el PDF de inventario y deja constancia EXPORT en el historial.
type ExportUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	generator    InventoryPDFGenerator
	activity     ports.ActivityRecorder
	now          func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	generator InventoryPDFGenerator,
	activity ports.ActivityRecorder,
) *ExportUseCase {
	return &ExportUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
		activity:     activity,
		now:          time.Now,
	}
}

// InventoryPDF genera el reporte de productos activos, opcionalmente filtrado por categoría y estado.
func (uc *ExportUseCase) InventoryPDF(ctx context.Context, categoryID, state string, actor entity.Actor) (pdfBytes []byte, filename string, err error) {
	st := entity.ProductState(strings.ToUpper(state))
	switch st {
	case "", entity.StateAvailable, entity.StateLow, entity.StateOut:
	default:
		return nil, "", domain.ErrInvalidInput
	}

	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: categoryID,
		State:      st,
		Limit:      maxReportRows,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar productos: %w", err)
	}
	categories, err := uc.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar categorías: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	now := uc.now()
	rep := &InventoryReport{
		Title:       "Reporte de inventario",
		GeneratedAt: now,
		GeneratedBy: actor.Username,
		Rows:        make([]InventoryReportRow, 0, len(products)),
		TotalValue:  decimal.Zero,
	}
	for _, p := range products {
		value := p.StockValue()
		rep.Rows = append(rep.Rows, InventoryReportRow{
			Code:        p.Code,
			Name:        p.Name,
			Category:    names[p.CategoryID],
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Unit:        string(p.Unit),
			State:       string(p.State),
			UnitPrice:   p.PurchasePrice,
			Value:       value,
		})
		rep.TotalUnits += p.Quantity
		rep.TotalValue = rep.TotalValue.Add(value)
		switch p.State {
		case entity.StateLow:
			rep.LowCount++
		case entity.StateOut:
			rep.OutCount++
		}
	}

	pdfBytes, err = uc.generator.GenerateInventoryPDF(ctx, rep)
	if err != nil {
		return nil, "", err
	}
	if uc.activity != nil {
		uc.activity.Record(ctx, actor.UserID, entity.ActivityExport,
			fmt.Sprintf("Exportó reporte de inventario (%d productos)", len(rep.Rows)), actor.ClientIP)
	}
	return pdfBytes, fmt.Sprintf("inventario_%s.pdf", now.Format("20060102_1504")), nil
}
