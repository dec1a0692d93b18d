package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"
	"github.com/Pessima-byte/Estommy-sub002/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ledgerOutstanding is a credit's contribution to the customer's running
// debt: zero once Cleared (whatever the arithmetic remainder), the
// outstanding balance otherwise. This mirrors the reconciliation sum, which
// skips Cleared credits, so a status flip alone moves the ledger too.
func ledgerOutstanding(c *model.Credit) decimal.Decimal {
	if c.Status == model.CreditCleared {
		return decimal.Zero
	}
	return c.Outstanding()
}

type CreditService interface {
	RecordCredit(ctx context.Context, actor Actor, req dto.RecordCreditRequest) (*dto.CreditResponse, error)
	UpdateCredit(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCreditRequest) (*dto.CreditResponse, error)
	DeleteCredit(ctx context.Context, actor Actor, id uuid.UUID) error
	GetCredit(ctx context.Context, id uuid.UUID) (*dto.CreditResponse, error)
	ListCredits(ctx context.Context, filter dto.CreditFilter) (*dto.CreditListResponse, error)
}

type creditService struct {
	credits    repository.CreditRepository
	sales      repository.SaleRepository
	customers  repository.CustomerRepository
	inventory  InventoryService
	ledger     LedgerService
	activity   ActivityService
	dispatcher *worker.Dispatcher
}

func NewCreditService(
	credits repository.CreditRepository,
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	inventory InventoryService,
	ledger LedgerService,
	activity ActivityService,
	dispatcher *worker.Dispatcher,
) CreditService {
	return &creditService{
		credits:    credits,
		sales:      sales,
		customers:  customers,
		inventory:  inventory,
		ledger:     ledger,
		activity:   activity,
		dispatcher: dispatcher,
	}
}

// RecordCredit creates a credit, its stock-consuming line items, and the debt
// adjustment as one atomic unit:
//  1. create the Credit row
//  2. per line item: decrement stock and create one Sale row stamped "Credit"
//     with the cost snapshot (one row per line item, quantity on the row)
//  3. bump the customer's debt by the credit's ledger contribution
//     (amount − amountPaid, or zero for a credit opened already Cleared)
//  4. append the Activity record
//
// Any line item's stock shortfall aborts the whole thing, Credit row included.
func (s *creditService) RecordCredit(ctx context.Context, actor Actor, req dto.RecordCreditRequest) (*dto.CreditResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, invalidInputf("invalid customer_id: %v", err)
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.CreditPending
	}

	var credit model.Credit
	var lowStock []*model.Product
	txErr := repository.RunTx(ctx, s.credits.DB(), func(tx *gorm.DB) error {
		lowStock = lowStock[:0]

		credit = model.Credit{
			CustomerID:   customerID,
			Amount:       req.Amount,
			AmountPaid:   req.AmountPaid,
			DueDate:      req.DueDate,
			Status:       status,
			Notes:        req.Notes,
			Terms:        req.Terms,
			InterestRate: req.InterestRate,
			Reference:    req.Reference,
			ImageURL:     req.ImageURL,
		}
		if err := s.credits.CreateTx(tx, &credit); err != nil {
			return err
		}

		for _, item := range req.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return invalidInputf("invalid product_id: %v", err)
			}

			p, err := s.inventory.AdjustStockTx(ctx, tx, productID, -item.Quantity,
				model.MovementCreditSale, fmt.Sprintf("Credit purchase by %s", customer.Name), &credit.ID)
			if err != nil {
				return err
			}
			if p.Status != model.StatusInStock {
				lowStock = append(lowStock, p)
			}

			sale := model.Sale{
				CustomerID: customerID,
				ProductID:  productID,
				CreditID:   &credit.ID,
				Date:       credit.CreatedAt,
				Amount:     item.Price,
				Quantity:   item.Quantity,
				CostPrice:  p.CostPrice,
				Status:     model.SaleCredit,
			}
			if err := s.sales.CreateTx(tx, &sale); err != nil {
				return err
			}
		}

		if err := s.ledger.AdjustDebtTx(ctx, tx, customerID, ledgerOutstanding(&credit)); err != nil {
			return err
		}

		meta, _ := json.Marshal(map[string]interface{}{
			"amount":      req.Amount,
			"amount_paid": req.AmountPaid,
			"items":       len(req.Items),
		})
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionCreate,
			EntityType:  model.EntityCredit,
			EntityID:    credit.ID,
			EntityName:  customer.Name,
			Description: fmt.Sprintf("Extended credit of %s to %s (paid %s upfront)", req.Amount.StringFixed(2), customer.Name, req.AmountPaid.StringFixed(2)),
			Metadata:    meta,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		for _, p := range lowStock {
			_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
				ProductID: p.ID.String(),
				Name:      p.Name,
				SKU:       p.SKU,
				Stock:     p.Stock,
				Status:    p.Status,
			})
		}
	}

	resp := creditToResponse(&credit)
	resp.CustomerName = customer.Name
	return resp, nil
}

// UpdateCredit applies a partial patch and moves the debt ledger by the
// change in the credit's ledger contribution, atomically. Marking a credit
// Cleared extinguishes whatever remained outstanding from the debt;
// un-clearing it puts the remainder back.
func (s *creditService) UpdateCredit(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCreditRequest) (*dto.CreditResponse, error) {
	var credit *model.Credit
	txErr := repository.RunTx(ctx, s.credits.DB(), func(tx *gorm.DB) error {
		c, err := s.credits.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreditNotFound
			}
			return err
		}

		oldContribution := ledgerOutstanding(c)

		if req.Amount != nil {
			c.Amount = *req.Amount
		}
		if req.AmountPaid != nil {
			c.AmountPaid = *req.AmountPaid
		}
		if req.DueDate != nil {
			c.DueDate = *req.DueDate
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.Notes != nil {
			c.Notes = req.Notes
		}
		if req.Terms != nil {
			c.Terms = req.Terms
		}
		if req.InterestRate != nil {
			c.InterestRate = req.InterestRate
		}
		if req.Reference != nil {
			c.Reference = req.Reference
		}
		if req.ImageURL != nil {
			c.ImageURL = req.ImageURL
		}

		if err := s.credits.UpdateTx(tx, c); err != nil {
			return err
		}

		delta := ledgerOutstanding(c).Sub(oldContribution)
		if err := s.ledger.AdjustDebtTx(ctx, tx, c.CustomerID, delta); err != nil {
			return err
		}

		credit = c
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityCredit,
			EntityID:    c.ID,
			EntityName:  c.ID.String(),
			Description: fmt.Sprintf("Updated credit: outstanding now %s (debt moved %s)", c.Outstanding().StringFixed(2), delta.StringFixed(2)),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return creditToResponse(credit), nil
}

// DeleteCredit reverses the credit's ledger contribution from the customer's
// debt (nothing for a Cleared credit) and removes the row. Line-item stock
// effects are deliberately not reversed.
func (s *creditService) DeleteCredit(ctx context.Context, actor Actor, id uuid.UUID) error {
	return repository.RunTx(ctx, s.credits.DB(), func(tx *gorm.DB) error {
		c, err := s.credits.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreditNotFound
			}
			return err
		}

		if err := s.ledger.AdjustDebtTx(ctx, tx, c.CustomerID, ledgerOutstanding(c).Neg()); err != nil {
			return err
		}
		if err := s.credits.DeleteTx(tx, id); err != nil {
			return err
		}

		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionDelete,
			EntityType:  model.EntityCredit,
			EntityID:    c.ID,
			EntityName:  c.ID.String(),
			Description: fmt.Sprintf("Deleted credit of %s (%s reversed from debt)", c.Amount.StringFixed(2), ledgerOutstanding(c).StringFixed(2)),
		})
	})
}

func (s *creditService) GetCredit(ctx context.Context, id uuid.UUID) (*dto.CreditResponse, error) {
	c, err := s.credits.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditNotFound
		}
		return nil, err
	}
	return creditToResponse(c), nil
}

func (s *creditService) ListCredits(ctx context.Context, filter dto.CreditFilter) (*dto.CreditListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	credits, total, err := s.credits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CreditResponse, 0, len(credits))
	for i := range credits {
		items = append(items, *creditToResponse(&credits[i]))
	}
	return &dto.CreditListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func creditToResponse(c *model.Credit) *dto.CreditResponse {
	resp := &dto.CreditResponse{
		ID:           c.ID.String(),
		CustomerID:   c.CustomerID.String(),
		Amount:       c.Amount,
		AmountPaid:   c.AmountPaid,
		Outstanding:  c.Outstanding(),
		DueDate:      c.DueDate.Format("2006-01-02"),
		Status:       c.Status,
		Notes:        c.Notes,
		Terms:        c.Terms,
		InterestRate: c.InterestRate,
		Reference:    c.Reference,
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if c.Customer != nil {
		resp.CustomerName = c.Customer.Name
	}
	return resp
}
