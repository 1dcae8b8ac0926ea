package inventory

import (
	"fmt"

	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// AlertTypeFor devuelve el tipo de alerta que corresponde al estado del producto.
// ok es false si el producto no amerita alerta (disponible o inactivo).
func AlertTypeFor(p *entity.Product) (alertType entity.AlertType, ok bool) {
	if p == nil || !p.Active {
		return "", false
	}
	switch Classify(p.Quantity, p.MinQuantity) {
	case entity.StateOut:
		return entity.AlertOutOfStock, true
	case entity.StateLow:
		return entity.AlertLowStock, true
	}
	return "", false
}

// AlertMessage construye el texto de la alerta para el producto.
func AlertMessage(p *entity.Product, alertType entity.AlertType) string {
	switch alertType {
	case entity.AlertOutOfStock:
		return fmt.Sprintf("El producto %s se ha agotado completamente.", p.Name)
	case entity.AlertLowStock:
		return fmt.Sprintf("El producto %s está por agotarse. Stock actual: %d", p.Name, p.Quantity)
	case entity.AlertNeedsRestock:
		return fmt.Sprintf("El producto %s necesita reabastecimiento. Stock actual: %d, mínimo: %d",
			p.Name, p.Quantity, p.MinQuantity)
	}
	return fmt.Sprintf("Alerta de inventario para %s", p.Name)
}

// ConditionHolds indica si la condición que originó una alerta sigue vigente para el producto.
// NEEDS_RESTOCK se considera vigente mientras el producto no esté disponible.
func ConditionHolds(p *entity.Product, alertType entity.AlertType) bool {
	if p == nil || !p.Active {
		return false
	}
	state := Classify(p.Quantity, p.MinQuantity)
	switch alertType {
	case entity.AlertOutOfStock:
		return state == entity.StateOut
	case entity.AlertLowStock:
		return state == entity.StateLow
	case entity.AlertNeedsRestock:
		return state != entity.StateAvailable
	}
	return false
}
