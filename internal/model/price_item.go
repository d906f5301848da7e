package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceItem is one product's price inside one price list. Effectively
// append-only: the only mutation allowed is the admin patch on the
// percentage/base fields, everything else is fixed at import time.
type PriceItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PriceListID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BasePriceUsd decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	MarkupPct    decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	ImpuestosPct decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	IvaPct       decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"index"`

	PriceList *PriceList `gorm:"foreignKey:PriceListID"`
	Product   *Product   `gorm:"foreignKey:ProductID"`
}

func (PriceItem) TableName() string { return "price_items" }
