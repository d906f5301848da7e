package model

import (
	"time"

	"github.com/google/uuid"
)

// PriceList is one imported batch of prices from a supplier.
// Rows are immutable once created; a newer list supersedes an older one
// purely by EffectiveDate ordering, nothing is ever overwritten.
type PriceList struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceLabel   *string
	EffectiveDate time.Time `gorm:"not null;index"`
	RawCurrency   string    `gorm:"not null;default:'USD'"`
	CreatedAt     time.Time

	Supplier *Supplier   `gorm:"foreignKey:SupplierID"`
	Items    []PriceItem `gorm:"foreignKey:PriceListID"`
}

func (PriceList) TableName() string { return "price_lists" }
