package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity actions.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Activity entity types.
const (
	EntityProduct  = "product"
	EntityCustomer = "customer"
	EntitySale     = "sale"
	EntityCredit   = "credit"
	EntityCategory = "category"
	EntityUser     = "user"
)

// Activity is an append-only audit record. It is written as the last step of
// every mutating procedure, inside the same transaction, so the existence of
// an Activity row is proof the parent mutation committed.
type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName    string    `gorm:"not null"`
	Action      string    `gorm:"type:varchar(10);not null"`
	EntityType  string    `gorm:"type:varchar(20);not null;index"`
	EntityID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EntityName  string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Metadata    datatypes.JSON
	CreatedAt   time.Time `gorm:"index"`
}

// TableName keeps the plural GORM would otherwise mangle ("activities").
func (Activity) TableName() string { return "activities" }
