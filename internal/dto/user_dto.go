package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	// Password is optional: when omitted a temporary password is generated,
	// returned once in the response and the account is flagged to change it.
	Password     *string          `json:"password"     validate:"omitempty,min=6"`
	Role         string           `json:"role"         validate:"omitempty,oneof=admin user"`
	DescuentoPct *decimal.Decimal `json:"descuentoPct"`
}

type UpdateUserRequest struct {
	Role         *string          `json:"role"         validate:"omitempty,oneof=admin user"`
	DescuentoPct *decimal.Decimal `json:"descuentoPct"`
	IsActive     *bool            `json:"isActive"`
	Password     *string          `json:"password"     validate:"omitempty,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	Role               string          `json:"role"`
	DescuentoPct       decimal.Decimal `json:"descuentoPct"`
	IsActive           bool            `json:"isActive"`
	MustChangePassword bool            `json:"mustChangePassword"`
	CreatedAt          string          `json:"createdAt"`
}

// CreateUserResponse carries the generated temporary password exactly once;
// it is never persisted in clear and never shown again.
type CreateUserResponse struct {
	User         UserResponse `json:"user"`
	TempPassword *string      `json:"tempPassword,omitempty"`
}

type ResetPasswordResponse struct {
	TempPassword string `json:"tempPassword"`
}
