package inventory

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso
// RegisterMovement(ctx, MovementInput). userID es el usuario autenticado.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInput{
		ProductID:       in.ProductID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ResponsibleUser: in.ResponsibleUser,
		SalePrice:       in.SalePrice,
		CreatedBy:       userID,
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte la entidad a DTO de salida.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		Reason:          m.Reason,
		ResponsibleUser: m.ResponsibleUser,
		SalePrice:       m.SalePrice,
		Date:            m.Date,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
