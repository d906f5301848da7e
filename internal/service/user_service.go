package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrEmailTaken   = errors.New("ya existe un usuario con ese email")
)

// TempPasswordMailer delivers generated temporary passwords. Delivery is
// best-effort: the password is also returned in the API response, so a mail
// failure must never fail the operation.
type TempPasswordMailer interface {
	SendTempPassword(to, password string) error
}

type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	ResetPassword(ctx context.Context, id, adminID uuid.UUID) (*dto.ResetPasswordResponse, error)
	// EnsureAdmin creates the bootstrap admin account if no user has that
	// email yet. Called once at startup and by cmd/seedadmin.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	users  repository.UserRepository
	mailer TempPasswordMailer
}

func NewUserService(users repository.UserRepository, mailer TempPasswordMailer) UserService {
	return &userService{users: users, mailer: mailer}
}

const bcryptCost = 10

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	return resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	var tempPassword *string
	password := ""
	if req.Password != nil && *req.Password != "" {
		password = *req.Password
	} else {
		generated, err := randomPassword(10)
		if err != nil {
			return nil, err
		}
		password = generated
		tempPassword = &generated
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := &model.User{
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		DescuentoPct:       clampPct(req.DescuentoPct),
		IsActive:           true,
		MustChangePassword: tempPassword != nil,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Race with a concurrent create on the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if tempPassword != nil && s.mailer != nil {
		if err := s.mailer.SendTempPassword(email, *tempPassword); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("temp password mail failed")
		}
	}

	return &dto.CreateUserResponse{User: userToResponse(user), TempPassword: tempPassword}, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.DescuentoPct != nil {
		user.DescuentoPct = clampPct(req.DescuentoPct)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user.PasswordHash = string(hash)
		user.PasswordUpdatedAt = &now
		user.MustChangePassword = false
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := userToResponse(user)
	return &resp, nil
}

// ResetPassword issues a fresh temporary password and records who reset it.
func (s *userService) ResetPassword(ctx context.Context, id, adminID uuid.UUID) (*dto.ResetPasswordResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	password, err := randomPassword(10)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	user.PasswordUpdatedAt = &now
	user.LastPasswordResetAt = &now
	user.LastPasswordResetBy = &adminID

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendTempPassword(user.Email, password); err != nil {
			log.Warn().Err(err).Str("email", user.Email).Msg("temp password mail failed")
		}
	}

	return &dto.ResetPasswordResponse{TempPassword: password}, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		DescuentoPct: decimal.Zero,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}

// clampPct forces a discount into 0..100; nil means 0.
func clampPct(pct *decimal.Decimal) decimal.Decimal {
	if pct == nil {
		return decimal.Zero
	}
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return *pct
}

const passwordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordCharset[n.Int64()]
	}
	return string(out), nil
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Role:               u.Role,
		DescuentoPct:       u.DescuentoPct,
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
	}
}
