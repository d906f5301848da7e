package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdatePriceItemRequest is the one sanctioned mutation on price items:
// adjusting the base price or the percentage chain. Absent fields are left
// untouched.
type UpdatePriceItemRequest struct {
	BasePriceUsd *decimal.Decimal `json:"basePriceUsd" validate:"omitempty,min=0"`
	MarkupPct    *decimal.Decimal `json:"markupPct"    validate:"omitempty,min=0,max=100"`
	ImpuestosPct *decimal.Decimal `json:"impuestosPct" validate:"omitempty,min=0,max=100"`
	IvaPct       *decimal.Decimal `json:"ivaPct"       validate:"omitempty,min=0,max=100"`
}

type BulkUpdatePriceItemsRequest struct {
	IDs          []string         `json:"ids" validate:"required,min=1,dive,uuid"`
	BasePriceUsd *decimal.Decimal `json:"basePriceUsd" validate:"omitempty,min=0"`
	MarkupPct    *decimal.Decimal `json:"markupPct"    validate:"omitempty,min=0,max=100"`
	ImpuestosPct *decimal.Decimal `json:"impuestosPct" validate:"omitempty,min=0,max=100"`
	IvaPct       *decimal.Decimal `json:"ivaPct"       validate:"omitempty,min=0,max=100"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type PriceItemFilter struct {
	ProductID   string `form:"productId"   validate:"omitempty,uuid"`
	PriceListID string `form:"priceListId" validate:"omitempty,uuid"`
	LatestOnly  bool   `form:"latestOnly"`
	Limit       int    `form:"limit,default=100" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PriceItemResponse struct {
	ID            string          `json:"id"`
	PriceListID   string          `json:"priceListId"`
	ProductID     string          `json:"productId"`
	ProductCode   string          `json:"productCode"`
	BasePriceUsd  decimal.Decimal `json:"basePriceUsd"`
	MarkupPct     decimal.Decimal `json:"markupPct"`
	ImpuestosPct  decimal.Decimal `json:"impuestosPct"`
	IvaPct        decimal.Decimal `json:"ivaPct"`
	EffectiveDate string          `json:"effectiveDate"`
	CreatedAt     string          `json:"createdAt"`
}

type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}
