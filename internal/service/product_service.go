package service

import (
	"context"
	"errors"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/pricing"
	"github.com/santyarena1/soundtec-fin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("producto no encontrado")

type ProductService interface {
	// List and Get compute prices for the calling user: descuentoPct comes
	// from the caller's token, never from request parameters.
	List(ctx context.Context, filter dto.ProductFilter, descuentoPct decimal.Decimal) (*dto.ProductListResponse, error)
	Get(ctx context.Context, id uuid.UUID, descuentoPct decimal.Decimal) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	// ExportSelection resolves a hand-picked set of products with prices
	// computed for the caller, preserving the requested order.
	ExportSelection(ctx context.Context, ids []uuid.UUID, descuentoPct decimal.Decimal) ([]dto.ProductResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	priceItems repository.PriceItemRepository
}

func NewProductService(products repository.ProductRepository, priceItems repository.PriceItemRepository) ProductService {
	return &productService{products: products, priceItems: priceItems}
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter, descuentoPct decimal.Decimal) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	latest, err := s.priceItems.LatestForProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i], latest[products[i].ID], descuentoPct))
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &dto.ProductListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID, descuentoPct decimal.Decimal) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	latest, err := s.priceItems.LatestForProducts(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, err
	}
	resp := productToResponse(product, latest[product.ID], descuentoPct)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.Family != nil {
		product.Family = req.Family
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.PhotoURL != nil {
		product.PhotoURL = req.PhotoURL
	}
	if req.ManufacturerInfo != nil {
		product.ManufacturerInfo = req.ManufacturerInfo
	}
	if req.StockMiami != nil {
		product.StockMiami = req.StockMiami
	}
	if req.StockLaredo != nil {
		product.StockLaredo = req.StockLaredo
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	latest, err := s.priceItems.LatestForProducts(ctx, []uuid.UUID{product.ID})
	if err != nil {
		return nil, err
	}
	resp := productToResponse(product, latest[product.ID], decimal.Zero)
	return &resp, nil
}

func (s *productService) ExportSelection(ctx context.Context, ids []uuid.UUID, descuentoPct decimal.Decimal) ([]dto.ProductResponse, error) {
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	latest, err := s.priceItems.LatestForProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	out := make([]dto.ProductResponse, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, productToResponse(p, latest[id], descuentoPct))
	}
	return out, nil
}

// productToResponse builds the API view of a product, pricing it with the
// latest item (nil pricing block when none exists yet).
func productToResponse(p *model.Product, latest *model.PriceItem, descuentoPct decimal.Decimal) dto.ProductResponse {
	supplierName := ""
	if p.Supplier != nil {
		supplierName = p.Supplier.Name
	}

	resp := dto.ProductResponse{
		ID:               p.ID.String(),
		SupplierID:       p.SupplierID.String(),
		SupplierName:     supplierName,
		Code:             p.Code,
		Name:             p.Name,
		Brand:            p.Brand,
		Family:           p.Family,
		Description:      p.Description,
		PhotoURL:         p.PhotoURL,
		ManufacturerInfo: p.ManufacturerInfo,
		StockMiami:       p.StockMiami,
		StockLaredo:      p.StockLaredo,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}

	if latest != nil {
		finalAdmin := pricing.AdminPrice(latest.BasePriceUsd, latest.MarkupPct, latest.ImpuestosPct, latest.IvaPct)
		effective := ""
		if latest.PriceList != nil {
			effective = latest.PriceList.EffectiveDate.Format("2006-01-02")
		}
		resp.Pricing = &dto.PricingBlock{
			PriceListID:   latest.PriceListID.String(),
			EffectiveDate: effective,
			BasePriceUsd:  latest.BasePriceUsd,
			MarkupPct:     latest.MarkupPct,
			ImpuestosPct:  latest.ImpuestosPct,
			IvaPct:        latest.IvaPct,
			FinalAdminUsd: finalAdmin,
			FinalUserUsd:  pricing.UserPrice(finalAdmin, descuentoPct),
		}
	}
	return resp
}
