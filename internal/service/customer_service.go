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

type CustomerService interface {
	CreateCustomer(ctx context.Context, actor Actor, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, actor Actor, id uuid.UUID) error
	ReactivateCustomer(ctx context.Context, actor Actor, id uuid.UUID) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
}

type customerService struct {
	customers repository.CustomerRepository
	activity  ActivityService
}

func NewCustomerService(customers repository.CustomerRepository, activity ActivityService) CustomerService {
	return &customerService{customers: customers, activity: activity}
}

func (s *customerService) CreateCustomer(ctx context.Context, actor Actor, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	txErr := repository.RunTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionCreate,
			EntityType:  model.EntityCustomer,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Added customer %s", c.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return customerToResponse(&c), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}

	txErr := repository.RunTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		// TotalDebt goes through IncrementDebtTx only; a Save here would
		// race the ledger, so update the contact columns explicitly.
		if err := tx.Model(&model.Customer{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":    c.Name,
			"phone":   c.Phone,
			"email":   c.Email,
			"address": c.Address,
		}).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityCustomer,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Updated customer %s", c.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return customerToResponse(c), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, actor Actor, id uuid.UUID) error {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return repository.RunTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Customer{}).Where("id = ?", id).Update("active", false).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionDelete,
			EntityType:  model.EntityCustomer,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Deactivated customer %s (debt %s retained)", c.Name, c.TotalDebt.StringFixed(2)),
		})
	})
}

func (s *customerService) ReactivateCustomer(ctx context.Context, actor Actor, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	txErr := repository.RunTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Customer{}).Where("id = ?", id).Update("active", true).Error; err != nil {
			return err
		}
		return s.activity.AppendTx(tx, model.Activity{
			UserID:      actor.ID,
			UserName:    actor.Name,
			Action:      model.ActionUpdate,
			EntityType:  model.EntityCustomer,
			EntityID:    c.ID,
			EntityName:  c.Name,
			Description: fmt.Sprintf("Reactivated customer %s", c.Name),
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	c.Active = true
	return customerToResponse(c), nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *customerToResponse(&customers[i]))
	}
	return &dto.CustomerListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		TotalDebt: c.TotalDebt,
		Active:    c.Active,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
