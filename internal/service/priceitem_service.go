package service

import (
	"context"
	"errors"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPriceItemNotFound = errors.New("item de precio no encontrado")
	ErrNegativeBasePrice = errors.New("el precio base no puede ser negativo")
)

type PriceItemService interface {
	List(ctx context.Context, filter dto.PriceItemFilter) ([]dto.PriceItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PriceItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePriceItemRequest) (*dto.PriceItemResponse, error)
	BulkUpdate(ctx context.Context, req dto.BulkUpdatePriceItemsRequest) (int, error)
}

type priceItemService struct {
	priceItems repository.PriceItemRepository
}

func NewPriceItemService(priceItems repository.PriceItemRepository) PriceItemService {
	return &priceItemService{priceItems: priceItems}
}

func (s *priceItemService) List(ctx context.Context, filter dto.PriceItemFilter) ([]dto.PriceItemResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	items, err := s.priceItems.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PriceItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, priceItemToResponse(&items[i]))
	}
	return resp, nil
}

func (s *priceItemService) Get(ctx context.Context, id uuid.UUID) (*dto.PriceItemResponse, error) {
	item, err := s.priceItems.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPriceItemNotFound
	}
	resp := priceItemToResponse(item)
	return &resp, nil
}

func (s *priceItemService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePriceItemRequest) (*dto.PriceItemResponse, error) {
	item, err := s.priceItems.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPriceItemNotFound
	}
	if err := applyPriceItemPatch(item, req); err != nil {
		return nil, err
	}
	if err := s.priceItems.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := priceItemToResponse(item)
	return &resp, nil
}

// BulkUpdate applies the same patch to every listed item. Items that no
// longer exist are skipped, they do not abort the rest of the batch.
func (s *priceItemService) BulkUpdate(ctx context.Context, req dto.BulkUpdatePriceItemsRequest) (int, error) {
	patch := dto.UpdatePriceItemRequest{
		BasePriceUsd: req.BasePriceUsd,
		MarkupPct:    req.MarkupPct,
		ImpuestosPct: req.ImpuestosPct,
		IvaPct:       req.IvaPct,
	}

	updated := 0
	for _, idStr := range req.IDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		item, err := s.priceItems.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if err := applyPriceItemPatch(item, patch); err != nil {
			return updated, err
		}
		if err := s.priceItems.Update(ctx, item); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func applyPriceItemPatch(item *model.PriceItem, req dto.UpdatePriceItemRequest) error {
	if req.BasePriceUsd != nil {
		if req.BasePriceUsd.IsNegative() {
			return ErrNegativeBasePrice
		}
		item.BasePriceUsd = *req.BasePriceUsd
	}
	if req.MarkupPct != nil {
		item.MarkupPct = *req.MarkupPct
	}
	if req.ImpuestosPct != nil {
		item.ImpuestosPct = *req.ImpuestosPct
	}
	if req.IvaPct != nil {
		item.IvaPct = *req.IvaPct
	}
	return nil
}

func priceItemToResponse(item *model.PriceItem) dto.PriceItemResponse {
	productCode := ""
	if item.Product != nil {
		productCode = item.Product.Code
	}
	effective := ""
	if item.PriceList != nil {
		effective = item.PriceList.EffectiveDate.Format("2006-01-02")
	}
	return dto.PriceItemResponse{
		ID:            item.ID.String(),
		PriceListID:   item.PriceListID.String(),
		ProductID:     item.ProductID.String(),
		ProductCode:   productCode,
		BasePriceUsd:  item.BasePriceUsd,
		MarkupPct:     item.MarkupPct,
		ImpuestosPct:  item.ImpuestosPct,
		IvaPct:        item.IvaPct,
		EffectiveDate: effective,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
}
