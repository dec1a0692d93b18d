package service

import (
	"context"
	"testing"
	"time"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCreditBumpsDebtByOutstanding(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})
	rice := f.products.add(&model.Product{
		SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 10,
		Price: dec("850.00"), CostPrice: dec("700.00"), Active: true,
	})
	oil := f.products.add(&model.Product{
		SKU: "OIL-5L", Name: "Palm Oil 5L", Stock: 8,
		Price: dec("120.00"), CostPrice: dec("95.00"), Active: true,
	})

	resp, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("1000.00"),
		AmountPaid: dec("200.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
		Items: []dto.CreditItemRequest{
			{ProductID: rice.ID.String(), Quantity: 1, Price: dec("850.00")},
			{ProductID: oil.ID.String(), Quantity: 1, Price: dec("120.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.CreditPending, resp.Status)
	assert.True(t, resp.Outstanding.Equal(dec("800.00")), "outstanding=%s", resp.Outstanding)

	assert.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("800.00")),
		"debt moves by amount minus upfront payment")

	assert.Equal(t, 9, f.products.products[rice.ID].Stock)
	assert.Equal(t, 7, f.products.products[oil.ID].Stock)

	// One Sale row per line item, stamped Credit and linked back.
	creditID := uuid.MustParse(resp.ID)
	require.Len(t, f.sales.sales, 2)
	for _, sale := range f.sales.sales {
		assert.Equal(t, model.SaleCredit, sale.Status)
		require.NotNil(t, sale.CreditID)
		assert.Equal(t, creditID, *sale.CreditID)
	}

	require.Len(t, f.movements.movements, 2)
	assert.Equal(t, model.MovementCreditSale, f.movements.movements[0].Type)

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, model.EntityCredit, f.activity.entries[0].EntityType)
}

func TestRecordCreditInsufficientLineItemAborts(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})
	soap := f.products.add(&model.Product{SKU: "SOAP-1", Name: "Soap", Stock: 1, Active: true})

	_, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("100.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
		Items: []dto.CreditItemRequest{
			{ProductID: soap.ID.String(), Quantity: 3, Price: dec("10.00")},
		},
	})
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	assert.Equal(t, 1, f.products.products[soap.ID].Stock)
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.IsZero(), "debt untouched on failure")
}

func TestRecordCreditUnknownCustomer(t *testing.T) {
	f := newCreditFixture()
	_, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: uuid.NewString(),
		Amount:     dec("100.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateCreditMovesDebtByOutstandingDelta(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})

	resp, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("1000.00"),
		AmountPaid: dec("200.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("800.00")))

	creditID := uuid.MustParse(resp.ID)
	paid := dec("800.00")
	status := model.CreditPartial
	updated, err := f.svc.UpdateCredit(context.Background(), testActor, creditID, dto.UpdateCreditRequest{
		AmountPaid: &paid,
		Status:     &status,
	})
	require.NoError(t, err)
	assert.True(t, updated.Outstanding.Equal(dec("200.00")))
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("200.00")),
		"debt follows the outstanding balance")
	assert.Equal(t, model.CreditPartial, f.credits.credits[creditID].Status)
}

func TestUpdateCreditClearedExtinguishesRemainingDebt(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})

	resp, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("1000.00"),
		AmountPaid: dec("200.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("800.00")))

	// Clearing forgives the remainder: the ledger must drop to what the
	// reconciliation sum (which skips Cleared credits) computes.
	creditID := uuid.MustParse(resp.ID)
	cleared := model.CreditCleared
	_, err = f.svc.UpdateCredit(context.Background(), testActor, creditID, dto.UpdateCreditRequest{
		Status: &cleared,
	})
	require.NoError(t, err)
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.IsZero(),
		"debt=%s", f.customers.customers[customer.ID].TotalDebt)

	result, err := f.ledger.Reconcile(context.Background(), customer.ID, false)
	require.NoError(t, err)
	assert.True(t, result.Drift.IsZero(), "ledger and credit sum diverged: %s", result.Drift)

	// Un-clearing puts the remainder back on the books.
	pending := model.CreditPending
	_, err = f.svc.UpdateCredit(context.Background(), testActor, creditID, dto.UpdateCreditRequest{
		Status: &pending,
	})
	require.NoError(t, err)
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("800.00")))

	result, err = f.ledger.Reconcile(context.Background(), customer.ID, false)
	require.NoError(t, err)
	assert.True(t, result.Drift.IsZero())
}

func TestDeleteClearedCreditLeavesDebtUntouched(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})

	resp, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("500.00"),
		AmountPaid: dec("100.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	creditID := uuid.MustParse(resp.ID)
	cleared := model.CreditCleared
	_, err = f.svc.UpdateCredit(context.Background(), testActor, creditID, dto.UpdateCreditRequest{Status: &cleared})
	require.NoError(t, err)
	require.True(t, f.customers.customers[customer.ID].TotalDebt.IsZero())

	// A Cleared credit contributes nothing to the ledger; deleting it must
	// not move the balance.
	require.NoError(t, f.svc.DeleteCredit(context.Background(), testActor, creditID))
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.IsZero())
}

func TestUpdateCreditNotFound(t *testing.T) {
	f := newCreditFixture()
	paid := dec("10.00")
	_, err := f.svc.UpdateCredit(context.Background(), testActor, uuid.New(), dto.UpdateCreditRequest{AmountPaid: &paid})
	assert.ErrorIs(t, err, ErrCreditNotFound)
}

func TestDeleteCreditReversesOutstandingDebt(t *testing.T) {
	f := newCreditFixture()
	customer := f.customers.add(&model.Customer{Name: "Mohamed Sesay"})
	rice := f.products.add(&model.Product{SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 10, Active: true})

	resp, err := f.svc.RecordCredit(context.Background(), testActor, dto.RecordCreditRequest{
		CustomerID: customer.ID.String(),
		Amount:     dec("500.00"),
		AmountPaid: dec("100.00"),
		DueDate:    time.Now().AddDate(0, 1, 0),
		Items: []dto.CreditItemRequest{
			{ProductID: rice.ID.String(), Quantity: 2, Price: dec("250.00")},
		},
	})
	require.NoError(t, err)
	require.True(t, f.customers.customers[customer.ID].TotalDebt.Equal(dec("400.00")))

	creditID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.DeleteCredit(context.Background(), testActor, creditID))

	_, ok := f.credits.credits[creditID]
	assert.False(t, ok)
	assert.True(t, f.customers.customers[customer.ID].TotalDebt.IsZero(), "outstanding reversed from debt")
	assert.Equal(t, 8, f.products.products[rice.ID].Stock, "stock effects are not reversed on delete")
}
