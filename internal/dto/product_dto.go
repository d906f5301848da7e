package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type UpdateProductRequest struct {
	Name             *string `json:"name"             validate:"omitempty,min=1"`
	Brand            *string `json:"brand"`
	Family           *string `json:"family"`
	Description      *string `json:"description"`
	PhotoURL         *string `json:"photoUrl"         validate:"omitempty,url"`
	ManufacturerInfo *string `json:"manufacturerInfo"`
	StockMiami       *int    `json:"stockMiami"       validate:"omitempty,min=0"`
	StockLaredo      *int    `json:"stockLaredo"      validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Q          string `form:"q"`
	SupplierID string `form:"supplierId" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"      validate:"min=1"`
	PageSize   int    `form:"pageSize,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PricingBlock is computed on every read from the latest price item; nothing
// in it is stored. Nil on products that have no price item yet.
type PricingBlock struct {
	PriceListID   string          `json:"priceListId"`
	EffectiveDate string          `json:"effectiveDate"`
	BasePriceUsd  decimal.Decimal `json:"basePriceUsd"`
	MarkupPct     decimal.Decimal `json:"markupPct"`
	ImpuestosPct  decimal.Decimal `json:"impuestosPct"`
	IvaPct        decimal.Decimal `json:"ivaPct"`
	FinalAdminUsd decimal.Decimal `json:"finalAdminUsd"`
	FinalUserUsd  decimal.Decimal `json:"finalUserUsd"`
}

type ProductResponse struct {
	ID               string        `json:"id"`
	SupplierID       string        `json:"supplierId"`
	SupplierName     string        `json:"supplierName"`
	Code             string        `json:"code"`
	Name             string        `json:"name"`
	Brand            *string       `json:"brand"`
	Family           *string       `json:"family"`
	Description      *string       `json:"description"`
	PhotoURL         *string       `json:"photoUrl"`
	ManufacturerInfo *string       `json:"manufacturerInfo"`
	StockMiami       *int          `json:"stockMiami"`
	StockLaredo      *int          `json:"stockLaredo"`
	CreatedAt        string        `json:"createdAt"`
	Pricing          *PricingBlock `json:"pricing"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
