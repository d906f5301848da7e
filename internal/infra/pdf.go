package infra

// pdf.go — catalog selection export using go-pdf/fpdf.
// Renders an A4 landscape table of the selected products with the prices
// already computed for the requesting user. Returned as bytes so the handler
// can stream it without touching disk.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateSelectionPDF renders the given products into a PDF price sheet.
// Products without a pricing block show a dash instead of a price.
func GenerateSelectionPDF(title string, products []dto.ProductResponse) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	colCode := contentW * 0.14
	colName := contentW * 0.34
	colBrand := contentW * 0.12
	colSupplier := contentW * 0.14
	colStock := contentW * 0.10
	colPrice := contentW * 0.16

	// ── Table header ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(colCode, 6, "Código", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colName, 6, "Artículo", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colBrand, 6, "Marca", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colSupplier, 6, "Proveedor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colStock, 6, "Stock MIA", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, 6, "Precio USD", "1", 1, "R", true, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, p := range products {
		brand := ""
		if p.Brand != nil {
			brand = *p.Brand
		}
		stock := "-"
		if p.StockMiami != nil {
			stock = fmt.Sprintf("%d", *p.StockMiami)
		}
		price := "-"
		if p.Pricing != nil {
			price = "$" + p.Pricing.FinalUserUsd.StringFixed(2)
		}

		pdf.CellFormat(colCode, 6, truncate(p.Code, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 6, truncate(p.Name, 50), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colBrand, 6, truncate(brand, 16), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colSupplier, 6, truncate(p.SupplierName, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colStock, 6, stock, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 6, price, "1", 1, "R", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4,
		fmt.Sprintf("%d artículos · precios en USD, sujetos a cambio sin previo aviso", len(products)),
		"", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate shortens cell text to max runes. Cutting on runes, not bytes,
// keeps accented names from turning into broken UTF-8 mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
