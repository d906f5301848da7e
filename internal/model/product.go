package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry owned by a supplier. The natural key is
// (supplier_id, code): the same code under two suppliers is two products.
// Descriptive fields are nullable on purpose: an import that omits a column
// must not blank out data loaded by a previous import.
type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_code"`
	Code             string    `gorm:"not null;uniqueIndex:idx_supplier_code"`
	Name             string    `gorm:"index;not null"`
	Brand            *string
	Family           *string
	Description      *string
	PhotoURL         *string
	ManufacturerInfo *string
	StockMiami       *int
	StockLaredo      *int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Supplier   *Supplier   `gorm:"foreignKey:SupplierID"`
	PriceItems []PriceItem `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }
