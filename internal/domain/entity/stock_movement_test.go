package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcastano/almacen-api/internal/domain/entity"
)

func TestMovementType_Sign(t *testing.T) {
	assert.Equal(t, int64(1), entity.MovementIn.Sign(), "In suma")
	assert.Equal(t, int64(-1), entity.MovementOut.Sign(), "Out resta")
}

func TestMovementType_IsValid(t *testing.T) {
	assert.True(t, entity.MovementIn.IsValid())
	assert.True(t, entity.MovementOut.IsValid())
	assert.False(t, entity.MovementType("Ajuste").IsValid())
	assert.False(t, entity.MovementType("").IsValid())
}

func TestStockMovement_SignedQuantity(t *testing.T) {
	in := &entity.StockMovement{Quantity: 5, Type: entity.MovementIn}
	out := &entity.StockMovement{Quantity: 5, Type: entity.MovementOut}
	assert.Equal(t, int64(5), in.SignedQuantity())
	assert.Equal(t, int64(-5), out.SignedQuantity())
}
