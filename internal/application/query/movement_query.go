package query

import (
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
}

func NewMovementQueryUseCase(movementRepo repository.MovementRepository, productRepo repository.ProductRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// List devuelve una página del historial, más recientes primero.
// productID no vacío filtra por producto y valida que exista.
func (uc *MovementQueryUseCase) List(page dto.PageRequest, productID string) (*dto.MovementListResponse, error) {
	page.DefaultPage()

	if productID != "" {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
	}

	total, err := uc.movementRepo.Count(productID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.List(productID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *inventory.ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Page, page.Size, total),
	}, nil
}

// GetByID devuelve un movimiento puntual; ErrNotFound si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	movement, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return inventory.ToMovementResponse(movement), nil
}
