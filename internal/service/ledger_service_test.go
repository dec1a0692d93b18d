package service

import (
	"context"
	"testing"
	"time"

	"github.com/Pessima-byte/Estommy-sub002/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustDebtTx(t *testing.T) {
	customers := newStubCustomerRepo()
	credits := newStubCreditRepo()
	svc := NewLedgerService(customers, credits)

	customer := customers.add(&model.Customer{Name: "Isata", TotalDebt: dec("100.00")})

	require.NoError(t, svc.AdjustDebtTx(context.Background(), nil, customer.ID, dec("50.00")))
	assert.True(t, customers.customers[customer.ID].TotalDebt.Equal(dec("150.00")))

	require.NoError(t, svc.AdjustDebtTx(context.Background(), nil, customer.ID, dec("-150.00")))
	assert.True(t, customers.customers[customer.ID].TotalDebt.IsZero())

	// Zero deltas never touch the repository.
	require.NoError(t, svc.AdjustDebtTx(context.Background(), nil, uuid.New(), dec("0")))

	err := svc.AdjustDebtTx(context.Background(), nil, uuid.New(), dec("10.00"))
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestReconcileDetectsAndFixesDrift(t *testing.T) {
	customers := newStubCustomerRepo()
	credits := newStubCreditRepo()
	svc := NewLedgerService(customers, credits)

	customer := customers.add(&model.Customer{Name: "Isata", TotalDebt: dec("900.00")})
	require.NoError(t, credits.CreateTx(nil, &model.Credit{
		CustomerID: customer.ID,
		Amount:     dec("1000.00"),
		AmountPaid: dec("200.00"),
		DueDate:    time.Now(),
		Status:     model.CreditPending,
	}))
	// Cleared credits are excluded from the computed balance.
	require.NoError(t, credits.CreateTx(nil, &model.Credit{
		CustomerID: customer.ID,
		Amount:     dec("500.00"),
		AmountPaid: dec("500.00"),
		DueDate:    time.Now(),
		Status:     model.CreditCleared,
	}))

	// Dry run: drift reported, balance untouched.
	result, err := svc.Reconcile(context.Background(), customer.ID, false)
	require.NoError(t, err)
	assert.True(t, result.Recorded.Equal(dec("900.00")))
	assert.True(t, result.Computed.Equal(dec("800.00")))
	assert.True(t, result.Drift.Equal(dec("100.00")))
	assert.False(t, result.Corrected)
	assert.True(t, customers.customers[customer.ID].TotalDebt.Equal(dec("900.00")))

	// Fix: the stored balance is overwritten with the recomputed sum.
	result, err = svc.Reconcile(context.Background(), customer.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Corrected)
	assert.True(t, customers.customers[customer.ID].TotalDebt.Equal(dec("800.00")))

	// Clean balance: no drift, nothing corrected.
	result, err = svc.Reconcile(context.Background(), customer.ID, true)
	require.NoError(t, err)
	assert.True(t, result.Drift.IsZero())
	assert.False(t, result.Corrected)
}

func TestReconcileUnknownCustomer(t *testing.T) {
	svc := NewLedgerService(newStubCustomerRepo(), newStubCreditRepo())
	_, err := svc.Reconcile(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestReconcileAllCoversEveryCustomer(t *testing.T) {
	customers := newStubCustomerRepo()
	credits := newStubCreditRepo()
	svc := NewLedgerService(customers, credits)

	a := customers.add(&model.Customer{Name: "A", TotalDebt: dec("10.00")})
	customers.add(&model.Customer{Name: "B"})

	results, err := svc.ReconcileAll(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, customers.customers[a.ID].TotalDebt.IsZero(), "no credits means zero balance")
}
