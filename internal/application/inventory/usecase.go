package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	domaininv "github.com/tu-usuario/stock-ledger/internal/domain/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (INBOUND, OUTBOUND) con bloqueo por producto y Commit/Rollback. Es el único
// camino por el que cambian cantidad, unidades vendidas y utilidad.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	alerts      AlertPublisher
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. alerts puede ser el
// publisher no-op; nowFn nil usa time.Now.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	alerts AlertPublisher,
	log *logger.Logger,
	nowFn func() time.Time,
) *RegisterMovementUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		alerts:      alerts,
		log:         log,
		now:         nowFn,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID       string
	Type            string
	Quantity        int64
	Reason          string
	ResponsibleUser string
	SalePrice       *decimal.Decimal // obligatorio en OUTBOUND
	CreatedBy       string           // usuario autenticado; puede ser vacío
}

// RegisterMovement valida la solicitud (en orden, gana el primer fallo),
// inicia una transacción, bloquea el agregado del producto, aplica el
// movimiento y hace Commit o Rollback. Toda validación ocurre antes de mutar:
// un rechazo deja cantidad, unidades vendidas y utilidad intactas.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.Type != entity.MovementTypeINBOUND && input.Type != entity.MovementTypeOUTBOUND {
		return nil, domain.ErrInvalidInput
	}

	// 1. El producto debe existir
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	// 2. Cantidad entera positiva
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	// 3. Responsable no vacío
	if input.ResponsibleUser == "" {
		return nil, domain.ErrMissingResponsible
	}
	// 4. Motivo válido para el tipo
	if !entity.ValidReason(input.Type, input.Reason) {
		return nil, domain.ErrInvalidReason
	}
	// 5. Salidas requieren precio de venta no negativo
	var salePrice decimal.Decimal
	if input.Type == entity.MovementTypeOUTBOUND {
		if input.SalePrice == nil || input.SalePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrMissingSalePrice
		}
		salePrice = *input.SalePrice
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:              uuid.New().String(),
		ProductID:       input.ProductID,
		Type:            input.Type,
		Quantity:        input.Quantity,
		Reason:          input.Reason,
		ResponsibleUser: input.ResponsibleUser,
		SalePrice:       salePrice,
		Date:            now,
		CreatedAt:       now,
		CreatedBy:       input.CreatedBy,
	}

	var lowStock *LowStockEvent

	// Inicia transacción; Commit si todo ok, Rollback si algo falla.
	// La adquisición del candado por producto respeta el deadline del ctx;
	// una vez adquirido, la actualización corre hasta completarse.
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		accountRepo repository.StockAccountRepository,
	) error {
		account, err := accountRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		switch input.Type {
		case entity.MovementTypeINBOUND:
			account.Quantity += input.Quantity
		case entity.MovementTypeOUTBOUND:
			// 6. La cantidad resultante no puede ser negativa
			if account.Quantity-input.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
			account.Quantity -= input.Quantity
			account.UnitsSold += input.Quantity
			account.Profit = account.Profit.Add(
				domaininv.ProfitCalculator(salePrice, product.CostPrice, input.Quantity),
			)
		}
		account.UpdatedAt = now
		if err := accountRepo.Upsert(account); err != nil {
			return err
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if input.Type == entity.MovementTypeOUTBOUND && account.Quantity <= product.MinQuantity {
			lowStock = &LowStockEvent{
				ProductID:   product.ID,
				SKU:         product.SKU,
				Name:        product.Name,
				Quantity:    account.Quantity,
				MinQuantity: product.MinQuantity,
				OccurredAt:  now,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// La alerta se publica después del commit; un fallo aquí no revierte nada.
	if lowStock != nil && uc.alerts != nil {
		if err := uc.alerts.PublishLowStock(ctx, *lowStock); err != nil && uc.log != nil {
			uc.log.Warn().Err(err).
				Str("product_id", lowStock.ProductID).
				Int64("quantity", lowStock.Quantity).
				Msg("no se pudo publicar alerta de stock bajo")
		}
	}
	return mov, nil
}
