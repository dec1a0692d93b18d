package service

import (
	"context"

	"github.com/Pessima-byte/Estommy-sub002/internal/dto"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"

	"gorm.io/gorm"
)

// ActivityService appends audit records and serves the read-only feed.
// Appends run in the caller's transaction: a failed append aborts the parent
// mutation, so an Activity row exists exactly when the mutation committed.
type ActivityService interface {
	AppendTx(tx *gorm.DB, a model.Activity) error
	List(ctx context.Context, filter dto.ActivityFilter) (*dto.ActivityListResponse, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) AppendTx(tx *gorm.DB, a model.Activity) error {
	return s.repo.CreateTx(tx, &a)
}

func (s *activityService) List(ctx context.Context, filter dto.ActivityFilter) (*dto.ActivityListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	activities, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		items = append(items, dto.ActivityResponse{
			ID:          a.ID.String(),
			UserID:      a.UserID.String(),
			UserName:    a.UserName,
			Action:      a.Action,
			EntityType:  a.EntityType,
			EntityID:    a.EntityID.String(),
			EntityName:  a.EntityName,
			Description: a.Description,
			Metadata:    []byte(a.Metadata),
			CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.ActivityListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
