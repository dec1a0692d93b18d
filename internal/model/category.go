package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Product.Category stores the label itself,
// so renaming a category does not rewrite product rows.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization (categories is fine, but
// explicit beats relying on the inflector).
func (Category) TableName() string { return "categories" }
