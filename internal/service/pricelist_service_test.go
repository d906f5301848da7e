package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/importer"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/repository"
	"github.com/santyarena1/soundtec-fin/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory SupplierRepository stub ────────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for _, existing := range r.suppliers {
		if strings.EqualFold(existing.Name, s.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	result := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products   map[uuid.UUID]*model.Product
	lastFilter dto.ProductFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var result []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	r.lastFilter = filter
	result := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindBySupplierAndCodeTx(_ *gorm.DB, supplierID uuid.UUID, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SupplierID == supplierID && p.Code == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) UpdateTx(_ *gorm.DB, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory PriceListRepository stub ───────────────────────────────────────

type stubPriceListRepo struct {
	lists map[uuid.UUID]*model.PriceList
}

func newStubPriceListRepo() *stubPriceListRepo {
	return &stubPriceListRepo{lists: make(map[uuid.UUID]*model.PriceList)}
}

func (r *stubPriceListRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PriceList, error) {
	pl, ok := r.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pl, nil
}

func (r *stubPriceListRepo) List(_ context.Context, supplierID *uuid.UUID) ([]model.PriceList, error) {
	var result []model.PriceList
	for _, pl := range r.lists {
		if supplierID != nil && pl.SupplierID != *supplierID {
			continue
		}
		result = append(result, *pl)
	}
	return result, nil
}

func (r *stubPriceListRepo) CreateTx(_ *gorm.DB, pl *model.PriceList) error {
	if pl.ID == uuid.Nil {
		pl.ID = uuid.New()
	}
	if pl.CreatedAt.IsZero() {
		pl.CreatedAt = time.Now()
	}
	r.lists[pl.ID] = pl
	return nil
}

func (r *stubPriceListRepo) DB() *gorm.DB { return nil }

var _ repository.PriceListRepository = (*stubPriceListRepo)(nil)

// ── In-memory PriceItemRepository stub ───────────────────────────────────────

type stubPriceItemRepo struct {
	items map[uuid.UUID]*model.PriceItem
	lists *stubPriceListRepo
	seq   int
}

func newStubPriceItemRepo(lists *stubPriceListRepo) *stubPriceItemRepo {
	return &stubPriceItemRepo{items: make(map[uuid.UUID]*model.PriceItem), lists: lists}
}

func (r *stubPriceItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PriceItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubPriceItemRepo) List(_ context.Context, filter dto.PriceItemFilter) ([]model.PriceItem, error) {
	var result []model.PriceItem
	for _, item := range r.items {
		if filter.ProductID != "" && item.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.PriceListID != "" && item.PriceListID.String() != filter.PriceListID {
			continue
		}
		result = append(result, *item)
	}
	return result, nil
}

func (r *stubPriceItemRepo) Update(_ context.Context, item *model.PriceItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *stubPriceItemRepo) LatestForProducts(_ context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*model.PriceItem, error) {
	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}

	latest := make(map[uuid.UUID]*model.PriceItem)
	for _, item := range r.items {
		if !wanted[item.ProductID] {
			continue
		}
		current, ok := latest[item.ProductID]
		if !ok || r.newer(item, current) {
			latest[item.ProductID] = item
		}
	}
	return latest, nil
}

// newer replicates the effective_date desc, created_at desc ordering.
func (r *stubPriceItemRepo) newer(a, b *model.PriceItem) bool {
	listA, listB := r.lists.lists[a.PriceListID], r.lists.lists[b.PriceListID]
	if listA == nil || listB == nil {
		return false
	}
	if !listA.EffectiveDate.Equal(listB.EffectiveDate) {
		return listA.EffectiveDate.After(listB.EffectiveDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *stubPriceItemRepo) CreateTx(_ *gorm.DB, item *model.PriceItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		r.seq++
		item.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	}
	r.items[item.ID] = item
	// Attach the parent list the way the real repo does.
	if pl, ok := r.lists.lists[item.PriceListID]; ok {
		item.PriceList = pl
	}
	return nil
}

var _ repository.PriceItemRepository = (*stubPriceItemRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

type importFixture struct {
	svc       service.PriceListService
	suppliers *stubSupplierRepo
	products  *stubProductRepo
	lists     *stubPriceListRepo
	items     *stubPriceItemRepo
}

func newImportFixture() *importFixture {
	suppliers := newStubSupplierRepo()
	products := newStubProductRepo()
	lists := newStubPriceListRepo()
	items := newStubPriceItemRepo(lists)
	svc := service.NewPriceListService(lists, items, products, suppliers)
	return &importFixture{svc: svc, suppliers: suppliers, products: products, lists: lists, items: items}
}

func seedSupplier(repo *stubSupplierRepo, name string) *model.Supplier {
	s := &model.Supplier{ID: uuid.New(), Name: name}
	repo.suppliers[s.ID] = s
	return s
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func row(code, name, base string) importer.ImportRow {
	return importer.ImportRow{
		Code:         code,
		Name:         name,
		BasePriceUsd: decimal.RequireFromString(base),
	}
}

// ── ImportBatch ──────────────────────────────────────────────────────────────

func TestImportBatch_NoRows(t *testing.T) {
	f := newImportFixture()

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{SupplierName: "Crestron"})

	assert.ErrorIs(t, err, service.ErrNoRows)
	assert.Empty(t, f.lists.lists)
}

func TestImportBatch_SupplierRequired(t *testing.T) {
	f := newImportFixture()

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		Rows: []importer.ImportRow{row("C-100", "Panel táctil", "100")},
	})

	assert.ErrorIs(t, err, service.ErrSupplierRequired)
}

func TestImportBatch_UnknownSupplierID(t *testing.T) {
	f := newImportFixture()
	missing := uuid.New()

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &missing,
		Rows:       []importer.ImportRow{row("C-100", "Panel táctil", "100")},
	})

	assert.ErrorIs(t, err, service.ErrSupplierNotFound)
}

func TestImportBatch_ResolvesSupplierByNameCaseInsensitive(t *testing.T) {
	f := newImportFixture()
	existing := seedSupplier(f.suppliers, "Crestron")

	result, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierName: "crestron",
		Rows:         []importer.ImportRow{row("C-100", "Panel táctil", "100")},
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.Supplier.ID)
	assert.Len(t, f.suppliers.suppliers, 1)
}

func TestImportBatch_CreatesSupplierFromUnknownName(t *testing.T) {
	f := newImportFixture()

	result, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierName: "Bose",
		Rows:         []importer.ImportRow{row("B-1", "Parlante", "250")},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bose", result.Supplier.Name)
	assert.NotEqual(t, uuid.Nil, result.Supplier.ID)
}

func TestImportBatch_CreatesListProductsAndItems(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")
	effective := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	result, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID:    &supplier.ID,
		SourceLabel:   strPtr("marzo.xlsx"),
		EffectiveDate: &effective,
		Rows: []importer.ImportRow{
			{
				Code:         "C-100",
				Name:         "Panel táctil",
				Brand:        strPtr("Crestron"),
				BasePriceUsd: decimal.RequireFromString("2750.00"),
				MarkupPct:    decimal.RequireFromString("10"),
				StockMiami:   intPtr(4),
			},
			row("C-200", "Procesador", "1200"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, supplier.ID, result.PriceList.SupplierID)
	assert.Equal(t, "USD", result.PriceList.RawCurrency)
	assert.True(t, result.PriceList.EffectiveDate.Equal(effective))

	assert.Len(t, f.products.products, 2)
	assert.Len(t, f.items.items, 2)
	for _, item := range f.items.items {
		assert.Equal(t, result.PriceList.ID, item.PriceListID)
	}
}

func TestImportBatch_NameDefaultsToCode(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-300", "", "99")},
	})

	require.NoError(t, err)
	for _, p := range f.products.products {
		assert.Equal(t, "C-300", p.Name)
	}
}

func TestImportBatch_ReimportReusesProducts(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-100", "Panel táctil", "100")},
	})
	require.NoError(t, err)

	_, err = f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-100", "Panel táctil", "110")},
	})
	require.NoError(t, err)

	// Same code under the same supplier stays one product; each import adds
	// its own list and item.
	assert.Len(t, f.products.products, 1)
	assert.Len(t, f.lists.lists, 2)
	assert.Len(t, f.items.items, 2)
}

func TestImportBatch_ReimportKeepsFieldsTheRowOmits(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")

	_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows: []importer.ImportRow{{
			Code:         "C-100",
			Name:         "Panel táctil",
			Brand:        strPtr("Crestron"),
			Family:       strPtr("Paneles"),
			StockMiami:   intPtr(7),
			BasePriceUsd: decimal.RequireFromString("100"),
		}},
	})
	require.NoError(t, err)

	// Second import carries only code and price.
	_, err = f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-100", "", "110")},
	})
	require.NoError(t, err)

	var product *model.Product
	for _, p := range f.products.products {
		product = p
	}
	require.NotNil(t, product)
	assert.Equal(t, "Panel táctil", product.Name)
	require.NotNil(t, product.Brand)
	assert.Equal(t, "Crestron", *product.Brand)
	require.NotNil(t, product.Family)
	assert.Equal(t, "Paneles", *product.Family)
	require.NotNil(t, product.StockMiami)
	assert.Equal(t, 7, *product.StockMiami)
}

func TestImportBatch_DefaultsEffectiveDateAndCurrency(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")
	before := time.Now()

	result, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-100", "Panel táctil", "100")},
	})

	require.NoError(t, err)
	assert.Equal(t, "USD", result.PriceList.RawCurrency)
	assert.False(t, result.PriceList.EffectiveDate.Before(before))
}

type failingPriceItemRepo struct {
	*stubPriceItemRepo
	failAfter int
	created   int
}

func (r *failingPriceItemRepo) CreateTx(tx *gorm.DB, item *model.PriceItem) error {
	if r.created >= r.failAfter {
		return errors.New("insert failed")
	}
	r.created++
	return r.stubPriceItemRepo.CreateTx(tx, item)
}

func TestImportBatch_MidBatchFailureAbortsWithError(t *testing.T) {
	suppliers := newStubSupplierRepo()
	products := newStubProductRepo()
	lists := newStubPriceListRepo()
	items := &failingPriceItemRepo{stubPriceItemRepo: newStubPriceItemRepo(lists), failAfter: 1}
	svc := service.NewPriceListService(lists, items, products, suppliers)
	supplier := seedSupplier(suppliers, "Crestron")

	result, err := svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows: []importer.ImportRow{
			row("C-100", "Panel táctil", "100"),
			row("C-200", "Procesador", "1200"),
		},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "C-200")
}

func TestImportBatch_PassesNotesThrough(t *testing.T) {
	f := newImportFixture()
	supplier := seedSupplier(f.suppliers, "Crestron")
	notes := []string{"Fila con moneda distinta a USD (EUR) para código C-900"}

	result, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
		SupplierID: &supplier.ID,
		Rows:       []importer.ImportRow{row("C-100", "Panel táctil", "100")},
		Notes:      notes,
	})

	require.NoError(t, err)
	assert.Equal(t, notes, result.Notes)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestPriceListList_InvalidSupplierID(t *testing.T) {
	f := newImportFixture()

	_, err := f.svc.List(context.Background(), dto.PriceListFilter{SupplierID: "not-a-uuid"})

	assert.Error(t, err)
}

func TestPriceListList_FiltersBySupplier(t *testing.T) {
	f := newImportFixture()
	crestron := seedSupplier(f.suppliers, "Crestron")
	bose := seedSupplier(f.suppliers, "Bose")

	for _, s := range []*model.Supplier{crestron, bose} {
		_, err := f.svc.ImportBatch(context.Background(), service.ImportBatchInput{
			SupplierID: &s.ID,
			Rows:       []importer.ImportRow{row("X-1", "Algo", "10")},
		})
		require.NoError(t, err)
	}

	lists, err := f.svc.List(context.Background(), dto.PriceListFilter{SupplierID: crestron.ID.String()})

	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, crestron.ID.String(), lists[0].SupplierID)
}
