package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User stores system users with role-based access.
// Role: "admin" | "user"
// DescuentoPct is the per-user commercial discount (0..100) applied on top of
// the admin price when computing that user's final price.
type User struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email               string          `gorm:"uniqueIndex;not null"`
	PasswordHash        string          `gorm:"not null"`
	Role                string          `gorm:"type:varchar(20);not null;default:'user'"`
	DescuentoPct        decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0"`
	IsActive            bool            `gorm:"not null;default:true"`
	MustChangePassword  bool            `gorm:"not null;default:false"`
	PasswordUpdatedAt   *time.Time
	LastPasswordResetAt *time.Time
	LastPasswordResetBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (User) TableName() string { return "users" }
