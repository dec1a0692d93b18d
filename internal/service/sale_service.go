package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"
	"github.com/Pessima-byte/Estommy-sub002/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	RecordSale(ctx context.Context, actor Actor, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	ReverseSale(ctx context.Context, actor Actor, id uuid.UUID, reason string) error
	DeleteSale(ctx context.Context, actor Actor, id uuid.UUID) error
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	ProfitReport(ctx context.Context, filter dto.ProfitReportFilter) (*dto.ProfitReportResponse, error)
}

type saleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	inventory  InventoryService
	activity   ActivityService
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	inventory InventoryService,
	activity ActivityService,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		sales:      sales,
		products:   products,
		customers:  customers,
		inventory:  inventory,
		activity:   activity,
		dispatcher: dispatcher,
	}
}

// RecordSale creates a cash sale as one atomic unit:
//  1. read the product under lock (cost snapshot + stock check)
//  2. create the Sale row with the cost snapshot
//  3. decrement stock and re-derive the status label
//  4. append the Activity record
//
// Any step failing rolls the whole transaction back — no stock decrement
// without a Sale row, and vice versa.
func (s *saleService) RecordSale(ctx context.Context, actor Actor, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, invalidInputf("invalid customer_id: %v", err)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, invalidInputf("invalid product_id: %v", err)
	}

	// Pre-flight, outside the tx: the customer reference never changes inside it.
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.SaleCompleted
	}

	var sale model.Sale
	var product *model.Product
	txErr := repository.RunTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindForUpdateTx(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		sale = model.Sale{
			CustomerID: customerID,
			ProductID:  productID,
			Date:       req.Date,
			Amount:     req.Amount,
			Quantity:   req.Quantity,
			CostPrice:  p.CostPrice,
			Status:     status,
		}
		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return err
		}

		product, err = s.inventory.AdjustStockTx(ctx, tx, productID, -req.Quantity,
			model.MovementSale, fmt.Sprintf("Sale of %d x %s", req.Quantity, p.Name), &sale.ID)
		if err != nil {
			return err
		}

		meta, _ := json.Marshal(map[string]interface{}{
			"amount":   req.Amount,
			"quantity": req.Quantity,
			"customer": customer.Name,
		})
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionCreate,
			EntityType:  model.EntitySale,
			EntityID:    sale.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Sold %d x %s to %s for %s", req.Quantity, p.Name, customer.Name, req.Amount.StringFixed(2)),
			Metadata:    meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best-effort alert — fire & forget, never affects the committed sale.
	if s.dispatcher != nil && product.Status != model.StatusInStock {
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
			ProductID: product.ID.String(),
			Name:      product.Name,
			SKU:       product.SKU,
			Stock:     product.Stock,
			Status:    product.Status,
		})
	}

	resp := saleToResponse(&sale)
	resp.CustomerName = customer.Name
	resp.ProductName = product.Name
	return resp, nil
}

// ReverseSale is the explicit refund operation: it restores stock, flips the
// sale to Refunded, and records the reversal. Plain deletion (below) is a
// data-entry correction and never touches stock.
func (s *saleService) ReverseSale(ctx context.Context, actor Actor, id uuid.UUID, reason string) error {
	return repository.RunTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sale, err := s.sales.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if sale.Status == model.SaleRefunded {
			return ErrSaleAlreadyRefunded
		}

		p, err := s.inventory.AdjustStockTx(ctx, tx, sale.ProductID, sale.Quantity,
			model.MovementReversal, fmt.Sprintf("Refund: %s", reason), &sale.ID)
		if err != nil {
			return err
		}

		if err := s.sales.UpdateStatusTx(tx, id, model.SaleRefunded); err != nil {
			return err
		}

		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntitySale,
			EntityID:    sale.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Refunded sale of %d x %s: %s", sale.Quantity, p.Name, reason),
		})
	})
}

// DeleteSale removes a mis-entered sale row. Stock is deliberately untouched:
// refunds go through ReverseSale.
func (s *saleService) DeleteSale(ctx context.Context, actor Actor, id uuid.UUID) error {
	return repository.RunTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sale, err := s.sales.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}
		if err := s.sales.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionDelete,
			EntityType:  model.EntitySale,
			EntityID:    sale.ID,
			EntityName:  sale.ID.String(),
			Description: fmt.Sprintf("Deleted sale record (%d units, %s) — data-entry correction, stock untouched", sale.Quantity, sale.Amount.StringFixed(2)),
		})
	})
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *saleService) ProfitReport(ctx context.Context, filter dto.ProfitReportFilter) (*dto.ProfitReportResponse, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)

	var err error
	if filter.From != "" {
		from, err = time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, invalidInputf("invalid from date: %v", err)
		}
	}
	if filter.To != "" {
		to, err = time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, invalidInputf("invalid to date: %v", err)
		}
	}

	row, err := s.sales.SumProfit(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.ProfitReportResponse{
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		Revenue:   row.Revenue,
		Cost:      row.Cost,
		Profit:    row.Profit,
		SaleCount: row.Count,
	}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID.String(),
		CustomerID: s.CustomerID.String(),
		ProductID:  s.ProductID.String(),
		Date:       s.Date.Format("2006-01-02"),
		Amount:     s.Amount,
		Quantity:   s.Quantity,
		CostPrice:  s.CostPrice,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if s.CreditID != nil {
		cid := s.CreditID.String()
		resp.CreditID = &cid
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.Name
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
	}
	return resp
}
