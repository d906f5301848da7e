package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ImportRowInput mirrors importer.ImportRow for the JSON import endpoint,
// which accepts pre-parsed rows (e.g. from a scripted client).
type ImportRowInput struct {
	Code             string           `json:"code" validate:"required"`
	Name             string           `json:"name"`
	Brand            *string          `json:"brand"`
	Family           *string          `json:"family"`
	Description      *string          `json:"description"`
	PhotoURL         *string          `json:"photoUrl"`
	ManufacturerInfo *string          `json:"manufacturerInfo"`
	BasePriceUsd     decimal.Decimal  `json:"basePriceUsd" validate:"min=0"`
	MarkupPct        *decimal.Decimal `json:"markupPct"    validate:"omitempty,min=0"`
	ImpuestosPct     *decimal.Decimal `json:"impuestosPct" validate:"omitempty,min=0"`
	IvaPct           *decimal.Decimal `json:"ivaPct"       validate:"omitempty,min=0"`
	StockMiami       *int             `json:"stockMiami"`
	StockLaredo      *int             `json:"stockLaredo"`
}

type ImportBatchRequest struct {
	SupplierID    *string          `json:"supplierId"    validate:"omitempty,uuid"`
	SupplierName  string           `json:"supplierName"`
	SourceLabel   *string          `json:"sourceLabel"`
	EffectiveDate *string          `json:"effectiveDate" validate:"omitempty,datetime=2006-01-02"`
	RawCurrency   string           `json:"rawCurrency"`
	Rows          []ImportRowInput `json:"rows" validate:"dive"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type PriceListFilter struct {
	SupplierID string `form:"supplierId" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PriceListResponse struct {
	ID            string  `json:"id"`
	SupplierID    string  `json:"supplierId"`
	SupplierName  string  `json:"supplierName"`
	SourceLabel   *string `json:"sourceLabel"`
	EffectiveDate string  `json:"effectiveDate"`
	RawCurrency   string  `json:"rawCurrency"`
	CreatedAt     string  `json:"createdAt"`
}

type ImportResponse struct {
	PriceList PriceListResponse `json:"priceList"`
	Imported  int               `json:"imported"`
	Notes     []string          `json:"notes"`
}
