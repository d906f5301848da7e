package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyFile means the workbook has no usable data section: fewer than a
// title row, a header row and at least one data row.
var ErrEmptyFile = errors.New("archivo vacío o con formato inesperado")

// ImportRow is one normalized spreadsheet row ready for the catalog upsert.
// Pointer fields distinguish "column absent / cell empty" (nil, leave the
// stored value untouched) from an explicit value.
type ImportRow struct {
	Code             string
	Name             string
	Brand            *string
	Family           *string
	Description      *string
	PhotoURL         *string
	ManufacturerInfo *string
	BasePriceUsd     decimal.Decimal
	MarkupPct        decimal.Decimal
	ImpuestosPct     decimal.Decimal
	IvaPct           decimal.Decimal
	StockMiami       *int
	StockLaredo      *int
}

// ParseResult carries the extracted rows plus human-readable notes about
// rows that were kept but look suspicious (e.g. non-USD currency).
type ParseResult struct {
	Rows  []ImportRow
	Notes []string
}

// column positions inside the header row; -1 = column not present
type columnMap struct {
	code, name, precioFinal, moneda  int
	laredo, miami, infoFab           int
	brand, family, descripcion, foto int
	precio                           int
}

// ParseXLSX reads the first sheet of a supplier workbook in the layout the
// Crestron exports use: row 1 is a cosmetic title, row 2 holds the real
// headers, data starts at row 3. Headers are matched by exact text,
// case-insensitive and trimmed. A missing optional column simply yields nil
// for every row; a missing code or unreadable base price skips that row.
func ParseXLSX(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer filas: %w", err)
	}
	if len(raw) < 3 {
		return nil, ErrEmptyFile
	}

	cols := mapColumns(raw[1])
	res := &ParseResult{}

	for _, row := range raw[2:] {
		code := strings.TrimSpace(cell(row, cols.code))
		if code == "" {
			continue
		}

		base, ok := basePrice(row, cols)
		if !ok {
			continue
		}

		currency := strings.ToUpper(strings.TrimSpace(cell(row, cols.moneda)))
		if cols.moneda >= 0 && currency != "" && currency != "USD" {
			res.Notes = append(res.Notes,
				fmt.Sprintf("Fila con moneda distinta a USD (%s) para código %s", currency, code))
		}

		name := strings.TrimSpace(cell(row, cols.name))
		if name == "" {
			name = code
		}

		res.Rows = append(res.Rows, ImportRow{
			Code:             code,
			Name:             name,
			Brand:            optCell(row, cols.brand),
			Family:           optCell(row, cols.family),
			Description:      optCell(row, cols.descripcion),
			PhotoURL:         optCell(row, cols.foto),
			ManufacturerInfo: optCell(row, cols.infoFab),
			BasePriceUsd:     base,
			MarkupPct:        decimal.Zero,
			ImpuestosPct:     decimal.Zero,
			IvaPct:           decimal.Zero,
			StockMiami:       parseStockCell(row, cols.miami),
			StockLaredo:      parseStockCell(row, cols.laredo),
		})
	}

	return res, nil
}

func mapColumns(header []string) columnMap {
	idx := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	cols := columnMap{
		code:        idx("código de artículo"),
		name:        idx("artículo"),
		precioFinal: idx("precio final"),
		moneda:      idx("moneda"),
		laredo:      idx("laredo"),
		miami:       idx("miami"),
		infoFab:     idx("info fábrica"),
		brand:       idx("marca"),
		family:      idx("familia"),
		descripcion: idx("descripcion"),
		foto:        idx("foto"),
		precio:      idx("precio"),
	}
	if cols.descripcion < 0 {
		cols.descripcion = idx("descripción")
	}
	return cols
}

// basePrice reads "precio final", falling back to the plain "precio" column.
func basePrice(row []string, cols columnMap) (decimal.Decimal, bool) {
	switch {
	case cols.precioFinal >= 0:
		return ParseMoney(cell(row, cols.precioFinal))
	case cols.precio >= 0:
		return ParseMoney(cell(row, cols.precio))
	default:
		return decimal.Decimal{}, false
	}
}

// cell returns the trimless raw value at index i, tolerating short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func optCell(row []string, i int) *string {
	if i < 0 {
		return nil
	}
	v := strings.TrimSpace(cell(row, i))
	if v == "" {
		return nil
	}
	return &v
}

func parseStockCell(row []string, i int) *int {
	if i < 0 {
		return nil
	}
	return ParseStock(cell(row, i))
}
