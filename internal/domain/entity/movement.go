package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementIn         MovementType = "IN"         // entrada
	MovementOut        MovementType = "OUT"        // salida
	MovementAdjustment MovementType = "ADJUSTMENT" // ajuste por conteo
	MovementReturn     MovementType = "RETURN"     // devolución
)

// Valid indica si t es un tipo conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// Movement registro inmutable de un cambio de cantidad. Solo lo crea el ledger.
type Movement struct {
	ID             string
	ProductID      string
	Type           MovementType
	Quantity       int // siempre positiva; el sentido lo da Type
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	Notes          string
	UserID         string // vacío si el usuario fue eliminado
	CreatedAt      time.Time
}
