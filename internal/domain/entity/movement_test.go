package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

func TestValidMovementType(t *testing.T) {
	assert.True(t, entity.ValidMovementType(entity.MovementTypeINBOUND))
	assert.True(t, entity.ValidMovementType(entity.MovementTypeOUTBOUND))
	assert.False(t, entity.ValidMovementType("TRANSFER"))
	assert.False(t, entity.ValidMovementType("inbound"), "los tipos distinguen mayúsculas")
	assert.False(t, entity.ValidMovementType(""))
}

func TestValidReason_PorTipo(t *testing.T) {
	// Motivos de entrada
	assert.True(t, entity.ValidReason(entity.MovementTypeINBOUND, entity.ReasonPurchase))
	assert.True(t, entity.ValidReason(entity.MovementTypeINBOUND, entity.ReasonRestock))
	assert.True(t, entity.ValidReason(entity.MovementTypeINBOUND, entity.ReasonReturn))

	// Motivos de salida
	assert.True(t, entity.ValidReason(entity.MovementTypeOUTBOUND, entity.ReasonSale))
	assert.True(t, entity.ValidReason(entity.MovementTypeOUTBOUND, entity.ReasonLoss))
	assert.True(t, entity.ValidReason(entity.MovementTypeOUTBOUND, entity.ReasonDamage))

	// Motivos cruzados: SALE no es válido en una entrada ni PURCHASE en una salida.
	assert.False(t, entity.ValidReason(entity.MovementTypeINBOUND, entity.ReasonSale))
	assert.False(t, entity.ValidReason(entity.MovementTypeOUTBOUND, entity.ReasonPurchase))

	assert.False(t, entity.ValidReason(entity.MovementTypeINBOUND, ""))
	assert.False(t, entity.ValidReason("", entity.ReasonSale))
}
