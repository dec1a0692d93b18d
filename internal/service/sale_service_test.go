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

func TestRecordSaleDecrementsStockAndDerivesStatus(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Fatmata Kamara"})
	product := f.products.add(&model.Product{
		SKU:       "RICE-50KG",
		Name:      "Rice 50kg",
		Stock:     6,
		Price:     dec("850.00"),
		CostPrice: dec("700.00"),
		Active:    true,
	})

	resp, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, f.products.products[product.ID].Stock)
	assert.Equal(t, model.StatusLowStock, f.products.products[product.ID].Status)
	assert.Equal(t, model.SaleCompleted, resp.Status)
	assert.Equal(t, "Fatmata Kamara", resp.CustomerName)
	assert.True(t, resp.CostPrice.Equal(dec("700.00")), "cost snapshot taken at sale time")

	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, model.MovementSale, mov.Type)
	assert.Equal(t, -2, mov.Quantity)
	assert.Equal(t, 6, mov.StockBefore)
	assert.Equal(t, 4, mov.StockAfter)

	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, model.EntitySale, f.activity.entries[0].EntityType)
}

func TestRecordSaleDrainsStockToZero(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "OIL-5L", Name: "Palm Oil 5L", Stock: 3, Active: true})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("120.00"),
		Quantity:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.products.products[product.ID].Stock)
	assert.Equal(t, model.StatusOutOfStock, f.products.products[product.ID].Status)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "SOAP-1", Name: "Soap", Stock: 2, Active: true})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("10.00"),
		Quantity:   5,
	})
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Soap", insufficient.ProductName)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	assert.Equal(t, 2, f.products.products[product.ID].Stock, "stock untouched on failure")
	assert.Empty(t, f.movements.movements)
}

func TestRecordSaleUnknownCustomer(t *testing.T) {
	f := newSaleFixture(nil)
	product := f.products.add(&model.Product{SKU: "X", Name: "X", Stock: 10, Active: true})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: uuid.NewString(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("10.00"),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  uuid.NewString(),
		Date:       time.Now(),
		Amount:     dec("10.00"),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordSaleFailedActivityAbortsFlow(t *testing.T) {
	activityRepo := &stubActivityRepo{failCreate: true}
	f := newSaleFixture(activityRepo)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "X", Name: "X", Stock: 10, Active: true})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("10.00"),
		Quantity:   1,
	})
	assert.Error(t, err, "audit row failure must fail the whole sale")
}

func TestReverseSaleRestoresStock(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 10, Active: true})

	resp, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.products.products[product.ID].Stock)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.ReverseSale(context.Background(), testActor, saleID, "customer returned goods"))

	assert.Equal(t, 10, f.products.products[product.ID].Stock)
	assert.Equal(t, model.SaleRefunded, f.sales.sales[saleID].Status)

	require.Len(t, f.movements.movements, 2)
	assert.Equal(t, model.MovementReversal, f.movements.movements[1].Type)
	assert.Equal(t, 4, f.movements.movements[1].Quantity)

	err = f.svc.ReverseSale(context.Background(), testActor, saleID, "again")
	assert.ErrorIs(t, err, ErrSaleAlreadyRefunded)
	assert.Equal(t, 10, f.products.products[product.ID].Stock)
}

func TestReverseSaleNotFound(t *testing.T) {
	f := newSaleFixture(nil)
	err := f.svc.ReverseSale(context.Background(), testActor, uuid.New(), "no such sale")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestDeleteSaleLeavesStockUntouched(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 10, Active: true})

	resp, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   3,
	})
	require.NoError(t, err)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, f.svc.DeleteSale(context.Background(), testActor, saleID))

	_, ok := f.sales.sales[saleID]
	assert.False(t, ok, "sale row removed")
	assert.Equal(t, 7, f.products.products[product.ID].Stock, "deletion is a correction, not a refund")
}

func TestProfitReportUsesCostSnapshot(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{
		SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 20,
		Price: dec("850.00"), CostPrice: dec("700.00"), Active: true,
	})

	_, err := f.svc.RecordSale(context.Background(), testActor, dto.RecordSaleRequest{
		CustomerID: customer.ID.String(),
		ProductID:  product.ID.String(),
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   2,
	})
	require.NoError(t, err)

	// Cost changes after the sale must not move historical profit.
	f.products.products[product.ID].CostPrice = dec("900.00")

	report, err := f.svc.ProfitReport(context.Background(), dto.ProfitReportFilter{
		From: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		To:   time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.True(t, report.Revenue.Equal(dec("1700.00")), "revenue=%s", report.Revenue)
	assert.True(t, report.Cost.Equal(dec("1400.00")), "cost=%s", report.Cost)
	assert.True(t, report.Profit.Equal(dec("300.00")), "profit=%s", report.Profit)
	assert.Equal(t, int64(1), report.SaleCount)
}

func TestProfitReportCountsCreditSalesAndSkipsRefunds(t *testing.T) {
	f := newSaleFixture(nil)
	customer := f.customers.add(&model.Customer{Name: "Amara"})
	product := f.products.add(&model.Product{SKU: "RICE-50KG", Name: "Rice 50kg", Stock: 50, Active: true})

	creditID := uuid.New()
	require.NoError(t, f.sales.CreateTx(nil, &model.Sale{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		CreditID:   &creditID,
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   2,
		CostPrice:  dec("700.00"),
		Status:     model.SaleCredit,
	}))
	require.NoError(t, f.sales.CreateTx(nil, &model.Sale{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Date:       time.Now(),
		Amount:     dec("850.00"),
		Quantity:   1,
		CostPrice:  dec("700.00"),
		Status:     model.SaleRefunded,
	}))

	report, err := f.svc.ProfitReport(context.Background(), dto.ProfitReportFilter{
		From: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		To:   time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	})
	require.NoError(t, err)

	// Credit-financed rows count (revenue recognized at sale time), refunded
	// rows never do.
	assert.Equal(t, int64(1), report.SaleCount)
	assert.True(t, report.Revenue.Equal(dec("1700.00")), "revenue=%s", report.Revenue)
	assert.True(t, report.Profit.Equal(dec("300.00")), "profit=%s", report.Profit)
}
