package repository

import (
	"context"

	"github.com/santyarena1/soundtec-fin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceListRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.PriceList, error)
	// List returns lists newest-first (effective_date, then created_at),
	// optionally restricted to one supplier.
	List(ctx context.Context, supplierID *uuid.UUID) ([]model.PriceList, error)

	// Used inside the import transaction — callers must pass the tx instance
	CreateTx(tx *gorm.DB, pl *model.PriceList) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type priceListRepo struct{ db *gorm.DB }

func NewPriceListRepository(db *gorm.DB) PriceListRepository { return &priceListRepo{db: db} }

func (r *priceListRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PriceList, error) {
	var pl model.PriceList
	err := r.db.WithContext(ctx).Preload("Supplier").First(&pl, id).Error
	return &pl, err
}

func (r *priceListRepo) List(ctx context.Context, supplierID *uuid.UUID) ([]model.PriceList, error) {
	var lists []model.PriceList
	q := r.db.WithContext(ctx).Preload("Supplier")
	if supplierID != nil {
		q = q.Where("supplier_id = ?", *supplierID)
	}
	err := q.Order("effective_date DESC").Order("created_at DESC").Find(&lists).Error
	return lists, err
}

func (r *priceListRepo) CreateTx(tx *gorm.DB, pl *model.PriceList) error {
	return tx.Create(pl).Error
}

func (r *priceListRepo) DB() *gorm.DB { return r.db }
