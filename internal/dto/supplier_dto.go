package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name       string  `json:"name"       validate:"required,min=2"`
	Slug       *string `json:"slug"`
	WebsiteURL *string `json:"websiteUrl" validate:"omitempty,url"`
	IsCrestron bool    `json:"isCrestron"`
}

type UpdateSupplierRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=2"`
	Slug       *string `json:"slug"`
	WebsiteURL *string `json:"websiteUrl" validate:"omitempty,url"`
	IsCrestron *bool   `json:"isCrestron"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Slug       *string `json:"slug"`
	WebsiteURL *string `json:"websiteUrl"`
	IsCrestron bool    `json:"isCrestron"`
	CreatedAt  string  `json:"createdAt"`
}
