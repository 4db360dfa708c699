package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El motor de movimientos valida en orden y devuelve el primero que falle;
// la capa HTTP decide el código de estado, nunca el dominio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un entero positivo")
	ErrMissingResponsible = errors.New("usuario responsable requerido")
	ErrInvalidReason      = errors.New("motivo inválido para el tipo de movimiento")
	ErrMissingSalePrice   = errors.New("precio de venta requerido para salidas")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
