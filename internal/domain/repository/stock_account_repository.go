package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// StockAccountRepository define el puerto para el agregado de stock por
// producto. Usado dentro de transacciones para garantizar consistencia.
type StockAccountRepository interface {
	Get(productID string) (*entity.StockAccount, error)
	// GetForUpdate bloquea el agregado del producto hasta el fin de la
	// transacción (SELECT FOR UPDATE en PostgreSQL; candado por producto en
	// la implementación en memoria).
	GetForUpdate(productID string) (*entity.StockAccount, error)
	Upsert(account *entity.StockAccount) error
	// GetMany devuelve los agregados de varios productos de una sola vez.
	GetMany(productIDs []string) (map[string]*entity.StockAccount, error)
}
