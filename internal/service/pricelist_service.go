package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/importer"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSupplierRequired = errors.New("se requiere supplierId o supplierName")
	ErrSupplierNotFound = errors.New("proveedor no encontrado")
	ErrNoRows           = errors.New("no hay filas para importar")
)

// ImportBatchInput is the normalized payload for one import, regardless of
// whether the rows came from an uploaded spreadsheet or a JSON body.
type ImportBatchInput struct {
	SupplierID    *uuid.UUID
	SupplierName  string
	SourceLabel   *string
	EffectiveDate *time.Time
	RawCurrency   string
	Rows          []importer.ImportRow
	Notes         []string
}

// ImportResult reports what one import batch produced.
type ImportResult struct {
	PriceList model.PriceList
	Supplier  model.Supplier
	Imported  int
	Notes     []string
}

type PriceListService interface {
	ImportBatch(ctx context.Context, input ImportBatchInput) (*ImportResult, error)
	List(ctx context.Context, filter dto.PriceListFilter) ([]dto.PriceListResponse, error)
}

type priceListService struct {
	priceLists repository.PriceListRepository
	priceItems repository.PriceItemRepository
	products   repository.ProductRepository
	suppliers  repository.SupplierRepository
}

func NewPriceListService(
	priceLists repository.PriceListRepository,
	priceItems repository.PriceItemRepository,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
) PriceListService {
	return &priceListService{
		priceLists: priceLists,
		priceItems: priceItems,
		products:   products,
		suppliers:  suppliers,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── ImportBatch ───────────────────────────────────────────────────────────────
// One import = one PriceList plus one PriceItem per row, and the product
// catalog upserted along the way. The whole batch runs in a single
// transaction: a failure halfway through leaves no half-imported list behind.
// Re-importing the same file is idempotent on products (matched by
// supplier+code) and additive on price lists.

func (s *priceListService) ImportBatch(ctx context.Context, input ImportBatchInput) (*ImportResult, error) {
	if len(input.Rows) == 0 {
		return nil, ErrNoRows
	}

	supplier, err := s.resolveSupplier(ctx, input)
	if err != nil {
		return nil, err
	}

	effective := time.Now()
	if input.EffectiveDate != nil {
		effective = *input.EffectiveDate
	}
	currency := input.RawCurrency
	if currency == "" {
		currency = "USD"
	}

	priceList := model.PriceList{
		SupplierID:    supplier.ID,
		SourceLabel:   input.SourceLabel,
		EffectiveDate: effective,
		RawCurrency:   currency,
	}

	imported := 0
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.priceLists.CreateTx(tx, &priceList); err != nil {
			return fmt.Errorf("crear lista de precios: %w", err)
		}

		for _, row := range input.Rows {
			product, err := s.upsertProduct(tx, supplier.ID, row)
			if err != nil {
				return fmt.Errorf("producto %s: %w", row.Code, err)
			}

			item := model.PriceItem{
				PriceListID:  priceList.ID,
				ProductID:    product.ID,
				BasePriceUsd: row.BasePriceUsd,
				MarkupPct:    row.MarkupPct,
				ImpuestosPct: row.ImpuestosPct,
				IvaPct:       row.IvaPct,
			}
			if err := s.priceItems.CreateTx(tx, &item); err != nil {
				return fmt.Errorf("precio de %s: %w", row.Code, err)
			}
			imported++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &ImportResult{
		PriceList: priceList,
		Supplier:  *supplier,
		Imported:  imported,
		Notes:     input.Notes,
	}, nil
}

// resolveSupplier finds the target supplier by id, then by case-insensitive
// name, creating it when only an unknown name was given.
func (s *priceListService) resolveSupplier(ctx context.Context, input ImportBatchInput) (*model.Supplier, error) {
	if input.SupplierID != nil {
		supplier, err := s.suppliers.FindByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, ErrSupplierNotFound
		}
		return supplier, nil
	}

	if input.SupplierName == "" {
		return nil, ErrSupplierRequired
	}

	supplier, err := s.suppliers.FindByName(ctx, input.SupplierName)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.Supplier{Name: input.SupplierName}
	if err := s.suppliers.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// upsertProduct creates or refreshes the product for one row. Only fields the
// row actually carries overwrite stored data; nil pointers leave the previous
// import's values alone.
func (s *priceListService) upsertProduct(tx *gorm.DB, supplierID uuid.UUID, row importer.ImportRow) (*model.Product, error) {
	product, err := s.products.FindBySupplierAndCodeTx(tx, supplierID, row.Code)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		name := row.Name
		if name == "" {
			name = row.Code
		}
		product = &model.Product{
			SupplierID:       supplierID,
			Code:             row.Code,
			Name:             name,
			Brand:            row.Brand,
			Family:           row.Family,
			Description:      row.Description,
			PhotoURL:         row.PhotoURL,
			ManufacturerInfo: row.ManufacturerInfo,
			StockMiami:       row.StockMiami,
			StockLaredo:      row.StockLaredo,
		}
		if err := s.products.CreateTx(tx, product); err != nil {
			return nil, err
		}
		return product, nil
	}

	if row.Name != "" {
		product.Name = row.Name
	}
	if row.Brand != nil {
		product.Brand = row.Brand
	}
	if row.Family != nil {
		product.Family = row.Family
	}
	if row.Description != nil {
		product.Description = row.Description
	}
	if row.PhotoURL != nil {
		product.PhotoURL = row.PhotoURL
	}
	if row.ManufacturerInfo != nil {
		product.ManufacturerInfo = row.ManufacturerInfo
	}
	if row.StockMiami != nil {
		product.StockMiami = row.StockMiami
	}
	if row.StockLaredo != nil {
		product.StockLaredo = row.StockLaredo
	}
	if err := s.products.UpdateTx(tx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (s *priceListService) List(ctx context.Context, filter dto.PriceListFilter) ([]dto.PriceListResponse, error) {
	var supplierID *uuid.UUID
	if filter.SupplierID != "" {
		id, err := uuid.Parse(filter.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("supplierId inválido: %w", err)
		}
		supplierID = &id
	}

	lists, err := s.priceLists.List(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.PriceListResponse, 0, len(lists))
	for i := range lists {
		resp = append(resp, PriceListToResponse(&lists[i]))
	}
	return resp, nil
}

func PriceListToResponse(pl *model.PriceList) dto.PriceListResponse {
	supplierName := ""
	if pl.Supplier != nil {
		supplierName = pl.Supplier.Name
	}
	return dto.PriceListResponse{
		ID:            pl.ID.String(),
		SupplierID:    pl.SupplierID.String(),
		SupplierName:  supplierName,
		SourceLabel:   pl.SourceLabel,
		EffectiveDate: pl.EffectiveDate.Format("2006-01-02"),
		RawCurrency:   pl.RawCurrency,
		CreatedAt:     pl.CreatedAt.Format(time.RFC3339),
	}
}
