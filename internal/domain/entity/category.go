package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID        string
	Name      string
	Code      string // único
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
