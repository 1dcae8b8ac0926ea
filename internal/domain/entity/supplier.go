package entity

import "time"

// Supplier proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT / RUT, opcional pero único
	Contact   string
	Phone     string
	Email     string
	Address   string
	City      string
	Country   string
	Website   string
	Rating    int // 1..5
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
