package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/model"
	"github.com/santyarena1/soundtec-fin/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	svc      service.ProductService
	products *stubProductRepo
	lists    *stubPriceListRepo
	items    *stubPriceItemRepo
	supplier *model.Supplier
}

func newProductFixture() *productFixture {
	products := newStubProductRepo()
	lists := newStubPriceListRepo()
	items := newStubPriceItemRepo(lists)
	supplier := &model.Supplier{ID: uuid.New(), Name: "Crestron"}
	return &productFixture{
		svc:      service.NewProductService(products, items),
		products: products,
		lists:    lists,
		items:    items,
		supplier: supplier,
	}
}

func (f *productFixture) seedProduct(code, name string) *model.Product {
	p := &model.Product{
		ID:         uuid.New(),
		SupplierID: f.supplier.ID,
		Code:       code,
		Name:       name,
		Supplier:   f.supplier,
	}
	f.products.products[p.ID] = p
	return p
}

// seedPrice registers a price item under a new list with the given effective date.
func (f *productFixture) seedPrice(productID uuid.UUID, base string, effective time.Time) *model.PriceItem {
	pl := &model.PriceList{ID: uuid.New(), SupplierID: f.supplier.ID, EffectiveDate: effective}
	f.lists.lists[pl.ID] = pl
	item := &model.PriceItem{
		PriceListID:  pl.ID,
		ProductID:    productID,
		BasePriceUsd: decimal.RequireFromString(base),
		MarkupPct:    decimal.RequireFromString("10"),
		ImpuestosPct: decimal.RequireFromString("5"),
		IvaPct:       decimal.RequireFromString("21"),
	}
	_ = f.items.CreateTx(nil, item)
	return item
}

func TestProductGet_ComputesPricesWithDiscount(t *testing.T) {
	f := newProductFixture()
	p := f.seedProduct("C-100", "Panel táctil")
	f.seedPrice(p.ID, "100", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	resp, err := f.svc.Get(context.Background(), p.ID, decimal.RequireFromString("10"))

	require.NoError(t, err)
	require.NotNil(t, resp.Pricing)
	assert.True(t, resp.Pricing.FinalAdminUsd.Equal(decimal.RequireFromString("139.755")),
		"finalAdminUsd = %s", resp.Pricing.FinalAdminUsd)
	assert.True(t, resp.Pricing.FinalUserUsd.Equal(decimal.RequireFromString("125.7795")),
		"finalUserUsd = %s", resp.Pricing.FinalUserUsd)
	assert.Equal(t, "2024-03-01", resp.Pricing.EffectiveDate)
	assert.Equal(t, "Crestron", resp.SupplierName)
}

func TestProductGet_NoPriceYieldsNilPricing(t *testing.T) {
	f := newProductFixture()
	p := f.seedProduct("C-100", "Panel táctil")

	resp, err := f.svc.Get(context.Background(), p.ID, decimal.Zero)

	require.NoError(t, err)
	assert.Nil(t, resp.Pricing)
}

func TestProductGet_NotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Get(context.Background(), uuid.New(), decimal.Zero)

	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestProductGet_UsesLatestEffectiveDate(t *testing.T) {
	f := newProductFixture()
	p := f.seedProduct("C-100", "Panel táctil")
	f.seedPrice(p.ID, "100", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f.seedPrice(p.ID, "120", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	f.seedPrice(p.ID, "110", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	resp, err := f.svc.Get(context.Background(), p.ID, decimal.Zero)

	require.NoError(t, err)
	require.NotNil(t, resp.Pricing)
	assert.True(t, resp.Pricing.BasePriceUsd.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "2024-06-01", resp.Pricing.EffectiveDate)
}

func TestProductGet_SameDateTieBreaksOnNewestItem(t *testing.T) {
	f := newProductFixture()
	p := f.seedProduct("C-100", "Panel táctil")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.seedPrice(p.ID, "100", day)
	f.seedPrice(p.ID, "105", day)

	resp, err := f.svc.Get(context.Background(), p.ID, decimal.Zero)

	require.NoError(t, err)
	require.NotNil(t, resp.Pricing)
	assert.True(t, resp.Pricing.BasePriceUsd.Equal(decimal.RequireFromString("105")))
}

func TestProductList_ClampsPagination(t *testing.T) {
	f := newProductFixture()
	f.seedProduct("C-100", "Panel táctil")

	resp, err := f.svc.List(context.Background(), dto.ProductFilter{Page: 0, PageSize: 500}, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.PageSize)
	assert.Equal(t, 1, f.products.lastFilter.Page)
	assert.Equal(t, 100, f.products.lastFilter.PageSize)
}

func TestProductList_TotalsAndPricing(t *testing.T) {
	f := newProductFixture()
	priced := f.seedProduct("C-100", "Panel táctil")
	f.seedProduct("C-200", "Procesador")
	f.seedPrice(priced.ID, "100", time.Now())

	resp, err := f.svc.List(context.Background(), dto.ProductFilter{Page: 1, PageSize: 20}, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	require.Len(t, resp.Data, 2)

	withPricing := 0
	for _, p := range resp.Data {
		if p.Pricing != nil {
			withPricing++
		}
	}
	assert.Equal(t, 1, withPricing)
}

func TestProductUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	f := newProductFixture()
	p := f.seedProduct("C-100", "Panel táctil")
	p.Brand = strPtr("Crestron")

	resp, err := f.svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		StockMiami: intPtr(12),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.StockMiami)
	assert.Equal(t, 12, *resp.StockMiami)
	assert.Equal(t, "Panel táctil", resp.Name)
	require.NotNil(t, resp.Brand)
	assert.Equal(t, "Crestron", *resp.Brand)
}

func TestProductExportSelection_PreservesRequestedOrder(t *testing.T) {
	f := newProductFixture()
	a := f.seedProduct("A-1", "Amplificador")
	b := f.seedProduct("B-1", "Parlante")
	c := f.seedProduct("C-1", "Micrófono")

	out, err := f.svc.ExportSelection(context.Background(),
		[]uuid.UUID{c.ID, a.ID, uuid.New(), b.ID}, decimal.Zero)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "C-1", out[0].Code)
	assert.Equal(t, "A-1", out[1].Code)
	assert.Equal(t, "B-1", out[2].Code)
}
