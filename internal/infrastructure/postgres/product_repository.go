package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, unit_measure, cost_price, sale_price, min_quantity, category_id, supplier_id, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var supplierID *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.UnitMeasure,
		&p.CostPrice, &p.SalePrice, &p.MinQuantity, &p.CategoryID,
		&supplierID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	return &p, nil
}

// Create persiste un nuevo producto junto con su cuenta de stock en cero.
// Una sola sentencia (CTE): producto y cuenta nacen atómicamente, y el
// FOR UPDATE del motor de movimientos siempre encuentra fila que bloquear.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		WITH nuevo AS (
			INSERT INTO products (` + productColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id, created_at
		)
		INSERT INTO stock_accounts (product_id, quantity, units_sold, profit, updated_at)
		SELECT id, 0, 0, 0, created_at FROM nuevo`
	supplierID := (*string)(nil)
	if product.SupplierID != "" {
		supplierID = &product.SupplierID
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.UnitMeasure,
		product.CostPrice, product.SalePrice, product.MinQuantity, product.CategoryID,
		supplierID, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los atributos de catálogo. Cantidad y acumulados no se tocan aquí.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, unit_measure = $5, cost_price = $6,
		    sale_price = $7, min_quantity = $8, category_id = $9, supplier_id = $10, updated_at = $11
		WHERE id = $1`
	supplierID := (*string)(nil)
	if product.SupplierID != "" {
		supplierID = &product.SupplierID
	}
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.UnitMeasure,
		product.CostPrice, product.SalePrice, product.MinQuantity, product.CategoryID,
		supplierID, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por id ascendente (paginación estable),
// con filtro opcional por categoría.
func (r *ProductRepo) List(categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	if categoryID != "" {
		query += ` WHERE category_id = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`
		args = append(args, categoryID, limit, offset)
	} else {
		query += ` ORDER BY id ASC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta productos, con filtro opcional por categoría.
func (r *ProductRepo) Count(categoryID string) (int, error) {
	var n int
	var err error
	if categoryID != "" {
		err = r.q.QueryRow(context.Background(),
			`SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	} else {
		err = r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Disable marca el producto como inactivo (borrado lógico).
func (r *ProductRepo) Disable(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("disable product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
