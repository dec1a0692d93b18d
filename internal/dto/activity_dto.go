package dto

import "encoding/json"

// ActivityFilter is bound from the query string of GET /v1/activities.
type ActivityFilter struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id" validate:"omitempty,uuid"`
	UserID     string `form:"user_id"   validate:"omitempty,uuid"`
	Action     string `form:"action"    validate:"omitempty,oneof=CREATE UPDATE DELETE"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ActivityResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type ActivityListResponse struct {
	Data  []ActivityResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
