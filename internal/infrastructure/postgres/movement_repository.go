package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovementRepo struct {
	q   Querier
	ctx context.Context
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q, ctx: context.Background()}
}

// newTxMovementRepository ata el repo a una transacción y al contexto del caller.
func newTxMovementRepository(ctx context.Context, q Querier) *MovementRepo {
	return &MovementRepo{q: q, ctx: ctx}
}

const movementColumns = `id, product_id, type, quantity, reason, responsible_user, sale_price, date, created_at, created_by`

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(r.ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Reason, movement.ResponsibleUser, movement.SalePrice,
		movement.Date, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason,
		&m.ResponsibleUser, &m.SalePrice, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(r.ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos más recientes primero; productID vacío = todos.
func (r *MovementRepo) List(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	if productID != "" {
		query += ` WHERE product_id = $1 ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`
		args = append(args, productID, limit, offset)
	} else {
		query += ` ORDER BY date DESC, id DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(r.ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Count cuenta movimientos; productID vacío = todos.
func (r *MovementRepo) Count(productID string) (int, error) {
	var n int
	var err error
	if productID != "" {
		err = r.q.QueryRow(r.ctx,
			`SELECT count(*) FROM movements WHERE product_id = $1`, productID).Scan(&n)
	} else {
		err = r.q.QueryRow(r.ctx, `SELECT count(*) FROM movements`).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}
