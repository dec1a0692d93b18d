package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService owns every stock mutation. The derived status column is
// recomputed from the new quantity on each write — no caller may set it.
type InventoryService interface {
	// AdjustStockTx applies a signed stock delta inside the caller's
	// transaction: row lock, sufficiency check, stock+status write, and one
	// StockMovement audit row. Returns the product with its new stock/status.
	AdjustStockTx(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) (*model.Product, error)

	// AdjustStock is the admin stock correction: runs its own transaction
	// and appends an Activity record.
	AdjustStock(ctx context.Context, actor Actor, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)

	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	activity  ActivityService
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	activity ActivityService,
) InventoryService {
	return &inventoryService{products: products, movements: movements, activity: activity}
}

func (s *inventoryService) AdjustStockTx(ctx context.Context, tx *gorm.DB, productID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) (*model.Product, error) {
	p, err := s.products.FindForUpdateTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	newStock := p.Stock + delta
	if newStock < 0 {
		return nil, &InsufficientStockError{
			ProductName: p.Name,
			Requested:   -delta,
			Available:   p.Stock,
		}
	}

	newStatus := model.StockStatus(newStock)
	if err := s.products.SetStockTx(tx, productID, newStock, newStatus); err != nil {
		return nil, err
	}

	mov := &model.StockMovement{
		ProductID:   productID,
		Type:        movType,
		Quantity:    delta,
		StockBefore: p.Stock,
		StockAfter:  newStock,
		Reason:      reason,
		ReferenceID: refID,
	}
	if err := s.movements.CreateTx(tx, mov); err != nil {
		return nil, err
	}

	p.Stock = newStock
	p.Status = newStatus
	return p, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, actor Actor, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	var updated *model.Product
	err := repository.RunTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.AdjustStockTx(ctx, tx, productID, req.Delta, model.MovementAdjustment, req.Reason, nil)
		if err != nil {
			return err
		}
		updated = p
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityProduct,
			EntityID:    p.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Adjusted stock of %s by %+d (%s): now %d", p.Name, req.Delta, req.Reason, p.Stock),
		})
	})
	if err != nil {
		return nil, err
	}
	return productToResponse(updated), nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		item := dto.MovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if m.Product != nil {
			item.ProductName = m.Product.Name
		}
		if m.ReferenceID != nil {
			ref := m.ReferenceID.String()
			item.ReferenceID = &ref
		}
		items = append(items, item)
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
