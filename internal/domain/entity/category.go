package entity

import "time"

// Category categoría principal de productos.
type Category struct {
	ID          string
	Name        string // único (sin distinguir mayúsculas)
	Slug        string
	Icon        string
	Color       string // #RRGGBB para gráficas
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Subcategory subcategoría dentro de una categoría; nombre único por categoría.
type Subcategory struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Active      bool
	CreatedAt   time.Time
}
