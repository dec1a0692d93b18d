package service

import (
	"context"
	"testing"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (InventoryService, *stubProductRepo, *stubMovementRepo, *stubActivityRepo) {
	products := newStubProductRepo()
	movements := &stubMovementRepo{}
	activityRepo := &stubActivityRepo{}
	svc := NewInventoryService(products, movements, NewActivityService(activityRepo))
	return svc, products, movements, activityRepo
}

func TestAdjustStockTxRecordsMovement(t *testing.T) {
	svc, products, movements, _ := newInventoryFixture()
	p := products.add(&model.Product{SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 8, Active: true})

	ref := uuid.New()
	updated, err := svc.AdjustStockTx(context.Background(), nil, p.ID, -3, model.MovementSale, "sale", &ref)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, model.StatusLowStock, updated.Status)
	assert.Equal(t, 5, products.products[p.ID].Stock)

	require.Len(t, movements.movements, 1)
	mov := movements.movements[0]
	assert.Equal(t, p.ID, mov.ProductID)
	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, 8, mov.StockBefore)
	assert.Equal(t, 5, mov.StockAfter)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, ref, *mov.ReferenceID)
}

func TestAdjustStockTxRejectsNegativeResult(t *testing.T) {
	svc, products, movements, _ := newInventoryFixture()
	p := products.add(&model.Product{SKU: "SOAP-1", Name: "Soap", Stock: 2, Active: true})

	_, err := svc.AdjustStockTx(context.Background(), nil, p.ID, -5, model.MovementSale, "sale", nil)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)

	assert.Equal(t, 2, products.products[p.ID].Stock)
	assert.Empty(t, movements.movements)
}

func TestAdjustStockTxUnknownProduct(t *testing.T) {
	svc, _, _, _ := newInventoryFixture()
	_, err := svc.AdjustStockTx(context.Background(), nil, uuid.New(), 1, model.MovementAdjustment, "restock", nil)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAdjustStockRestockAppendsActivity(t *testing.T) {
	svc, products, movements, activityRepo := newInventoryFixture()
	p := products.add(&model.Product{SKU: "OIL-5L", Name: "Palm Oil 5L", Stock: 0, Active: true})
	require.Equal(t, model.StatusOutOfStock, products.products[p.ID].Status)

	resp, err := svc.AdjustStock(context.Background(), testActor, p.ID, dto.AdjustStockRequest{
		Delta:  12,
		Reason: "supplier delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)
	assert.Equal(t, model.StatusInStock, resp.Status)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, model.MovementAdjustment, movements.movements[0].Type)

	require.Len(t, activityRepo.entries, 1)
	entry := activityRepo.entries[0]
	assert.Equal(t, model.EntityProduct, entry.EntityType)
	assert.Equal(t, model.ActionUpdate, entry.Action)
	assert.Equal(t, testActor.Name, entry.UserName)
}
