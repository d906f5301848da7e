package service

import (
	"context"
	"errors"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSupplierExists = errors.New("ya existe un proveedor con ese nombre")
)

type SupplierService interface {
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
}

type supplierService struct {
	suppliers repository.SupplierRepository
}

func NewSupplierService(suppliers repository.SupplierRepository) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = supplierToResponse(&suppliers[i])
	}
	return resp, nil
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if _, err := s.suppliers.FindByName(ctx, req.Name); err == nil {
		return nil, ErrSupplierExists
	}

	supplier := &model.Supplier{
		Name:       req.Name,
		Slug:       req.Slug,
		WebsiteURL: req.WebsiteURL,
		IsCrestron: req.IsCrestron,
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSupplierExists
		}
		return nil, err
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Slug != nil {
		supplier.Slug = req.Slug
	}
	if req.WebsiteURL != nil {
		supplier.WebsiteURL = req.WebsiteURL
	}
	if req.IsCrestron != nil {
		supplier.IsCrestron = *req.IsCrestron
	}

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		Slug:       s.Slug,
		WebsiteURL: s.WebsiteURL,
		IsCrestron: s.IsCrestron,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
