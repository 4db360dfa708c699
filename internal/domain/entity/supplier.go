package entity

import "time"

// Supplier representa un proveedor. Opcional en productos: el core lo modela
// como referencia nullable; si es obligatorio al crear es política del caller.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // documento fiscal; validación de formato es asunto de UI
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
