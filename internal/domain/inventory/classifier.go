package inventory

import "github.com/jhoicas/sisbar-inventario/internal/domain/entity"

// Classify deriva el estado de disponibilidad a partir de la cantidad y el mínimo (servicio de dominio).
//
//	cantidad == 0              → OUT
//	0 < cantidad <= mínimo     → LOW
//	cantidad > mínimo          → AVAILABLE
//
// Es pura e idempotente; no existe otra forma de fijar el estado de un producto.
func Classify(quantity, minQuantity int) entity.ProductState {
	switch {
	case quantity <= 0:
		return entity.StateOut
	case quantity <= minQuantity:
		return entity.StateLow
	default:
		return entity.StateAvailable
	}
}

// ApplyState recalcula p.State. Los repositorios lo invocan antes de cada persistencia.
func ApplyState(p *entity.Product) {
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.State = Classify(p.Quantity, p.MinQuantity)
}
