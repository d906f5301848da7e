package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a catalog provider. Suppliers can be created explicitly
// by an admin or implicitly during a price-list import (matched by name,
// case-insensitive).
type Supplier struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"uniqueIndex;not null"`
	Slug       *string
	WebsiteURL *string
	IsCrestron bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Products   []Product   `gorm:"foreignKey:SupplierID"`
	PriceLists []PriceList `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "suppliers" }
