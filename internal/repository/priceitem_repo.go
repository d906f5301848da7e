package repository

import (
	"context"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceItem, error)
	List(ctx context.Context, filter dto.PriceItemFilter) ([]model.PriceItem, error)
	Update(ctx context.Context, item *model.PriceItem) error

	// LatestForProducts returns, per product id, the price item of the most
	// recent list (effective_date desc, created_at desc as tie-break).
	// Products without any item are simply absent from the map.
	LatestForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*model.PriceItem, error)

	// Used inside the import transaction — callers must pass the tx instance
	CreateTx(tx *gorm.DB, item *model.PriceItem) error
}

type priceItemRepo struct{ db *gorm.DB }

func NewPriceItemRepository(db *gorm.DB) PriceItemRepository { return &priceItemRepo{db: db} }

func (r *priceItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceItem, error) {
	var item model.PriceItem
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("PriceList").
		First(&item, id).Error
	return &item, err
}

func (r *priceItemRepo) List(ctx context.Context, filter dto.PriceItemFilter) ([]model.PriceItem, error) {
	var items []model.PriceItem
	q := r.db.WithContext(ctx).
		Joins("JOIN price_lists ON price_lists.id = price_items.price_list_id").
		Preload("Product").Preload("PriceList")

	if filter.ProductID != "" {
		q = q.Where("price_items.product_id = ?", filter.ProductID)
	}
	if filter.PriceListID != "" {
		q = q.Where("price_items.price_list_id = ?", filter.PriceListID)
	}

	q = q.Order("price_lists.effective_date DESC").Order("price_items.created_at DESC")
	if filter.LatestOnly {
		q = q.Limit(1)
	} else {
		q = q.Limit(filter.Limit)
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *priceItemRepo) Update(ctx context.Context, item *model.PriceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *priceItemRepo) LatestForProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*model.PriceItem, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]*model.PriceItem{}, nil
	}

	var items []model.PriceItem
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (pi.product_id) pi.*
		     FROM price_items pi
		     JOIN price_lists pl ON pl.id = pi.price_list_id
		     WHERE pi.product_id IN ?
		     ORDER BY pi.product_id, pl.effective_date DESC, pi.created_at DESC`, productIDs).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return map[uuid.UUID]*model.PriceItem{}, nil
	}

	// Raw scan skips associations; attach the parent lists by hand so callers
	// can read the effective date.
	listIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		listIDs = append(listIDs, items[i].PriceListID)
	}
	var lists []model.PriceList
	if err := r.db.WithContext(ctx).Where("id IN ?", listIDs).Find(&lists).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.PriceList, len(lists))
	for i := range lists {
		byID[lists[i].ID] = &lists[i]
	}

	latest := make(map[uuid.UUID]*model.PriceItem, len(items))
	for i := range items {
		items[i].PriceList = byID[items[i].PriceListID]
		latest[items[i].ProductID] = &items[i]
	}
	return latest, nil
}

func (r *priceItemRepo) CreateTx(tx *gorm.DB, item *model.PriceItem) error {
	return tx.Create(item).Error
}
