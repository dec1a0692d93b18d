package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, actor Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error
	ReactivateProduct(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	PriceHistory(ctx context.Context, id uuid.UUID) ([]dto.PriceHistoryResponse, error)
}

type productService struct {
	products repository.ProductRepository
	history  repository.PriceHistoryRepository
	activity ActivityService
	rdb      *redis.Client
}

func NewProductService(
	products repository.ProductRepository,
	history repository.PriceHistoryRepository,
	activity ActivityService,
	rdb *redis.Client,
) ProductService {
	return &productService{products: products, history: history, activity: activity, rdb: rdb}
}

func (s *productService) CreateProduct(ctx context.Context, actor Actor, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		Status:      model.StockStatus(req.Stock),
		ImageURL:    req.ImageURL,
		Active:      true,
	}

	txErr := repository.RunTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateSKU
			}
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionCreate,
			EntityType:  model.EntityProduct,
			EntityID:    p.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Added product %s (SKU %s) with %d units", p.Name, p.SKU, p.Stock),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return productToResponse(&p), nil
}

// UpdateProduct patches catalog fields. A price or cost change also writes a
// price_history row in the same transaction and drops the cached price entry.
func (s *productService) UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var p *model.Product
	txErr := repository.RunTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		found, err := s.products.FindForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		oldPrice := found.Price
		oldCost := found.CostPrice

		if req.Name != nil {
			found.Name = *req.Name
		}
		if req.Description != nil {
			found.Description = req.Description
		}
		if req.Category != nil {
			found.Category = *req.Category
		}
		if req.Price != nil {
			found.Price = *req.Price
		}
		if req.CostPrice != nil {
			found.CostPrice = *req.CostPrice
		}
		if req.ImageURL != nil {
			found.ImageURL = req.ImageURL
		}

		if err := tx.Save(found).Error; err != nil {
			return err
		}

		priceChanged := !found.Price.Equal(oldPrice) || !found.CostPrice.Equal(oldCost)
		if priceChanged {
			h := model.PriceHistory{
				ProductID:    found.ID,
				OldPrice:     oldPrice,
				NewPrice:     found.Price,
				OldCostPrice: oldCost,
				NewCostPrice: found.CostPrice,
				ChangedBy:    actor.Name,
			}
			if err := s.history.CreateTx(tx, &h); err != nil {
				return err
			}
		}

		meta, _ := json.Marshal(map[string]interface{}{
			"old_price": oldPrice,
			"new_price": found.Price,
		})
		if err := s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityProduct,
			EntityID:    found.ID,
			EntityName:  found.Name,
			Description: fmt.Sprintf("Updated product %s", found.Name),
			Metadata:    meta,
		}); err != nil {
			return err
		}

		p = found
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidatePriceCache(ctx, p.SKU)
	return productToResponse(p), nil
}

func (s *productService) DeleteProduct(ctx context.Context, actor Actor, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	txErr := repository.RunTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionDelete,
			EntityType:  model.EntityProduct,
			EntityID:    p.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Deactivated product %s (SKU %s)", p.Name, p.SKU),
		})
	})
	if txErr != nil {
		return txErr
	}

	s.invalidatePriceCache(ctx, p.SKU)
	return nil
}

func (s *productService) ReactivateProduct(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	txErr := repository.RunTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Update("active", true).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityProduct,
			EntityID:    p.ID,
			EntityName:  p.Name,
			Description: fmt.Sprintf("Reactivated product %s", p.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	p.Active = true
	return productToResponse(p), nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) PriceHistory(ctx context.Context, id uuid.UUID) ([]dto.PriceHistoryResponse, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	rows, err := s.history.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, dto.PriceHistoryResponse{
			ID:           h.ID.String(),
			OldPrice:     h.OldPrice,
			NewPrice:     h.NewPrice,
			OldCostPrice: h.OldCostPrice,
			NewCostPrice: h.NewCostPrice,
			ChangedBy:    h.ChangedBy,
			CreatedAt:    h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

// invalidatePriceCache drops the cached price-check entry for a SKU. Best
// effort — the TTL bounds staleness if redis is unreachable.
func (s *productService) invalidatePriceCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "price:"+sku).Err(); err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("failed to invalidate price cache")
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Stock:       p.Stock,
		Status:      p.Status,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
