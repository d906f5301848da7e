package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/apierror"
	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/importer"
	"github.com/santyarena1/soundtec-fin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PriceListsHandler struct {
	svc         service.PriceListService
	maxUploadMB int64
}

func NewPriceListsHandler(svc service.PriceListService, maxUploadMB int64) *PriceListsHandler {
	return &PriceListsHandler{svc: svc, maxUploadMB: maxUploadMB}
}

func (h *PriceListsHandler) List(c *gin.Context) {
	var filter dto.PriceListFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar listas de precios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Import ingests pre-parsed rows from a JSON body (scripted clients).
func (h *PriceListsHandler) Import(c *gin.Context) {
	var req dto.ImportBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input, err := importInputFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	h.runImport(c, input)
}

// ImportXLSX ingests an uploaded supplier workbook. Batch metadata travels in
// query parameters, matching the multipart upload contract.
func (h *PriceListsHandler) ImportXLSX(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Coded("FILE_REQUIRED", "se requiere el archivo 'file'"))
		return
	}
	if file.Size > h.maxUploadMB<<20 {
		c.JSON(http.StatusBadRequest, apierror.Coded("FILE_TOO_LARGE", "el archivo supera el tamaño máximo permitido"))
		return
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".xlsx", ".xls":
	default:
		c.JSON(http.StatusBadRequest, apierror.Coded("INVALID_FILE_TYPE", "solo se aceptan archivos .xlsx o .xls"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Coded("FILE_REQUIRED", "se requiere el archivo 'file'"))
		return
	}
	defer f.Close()

	parsed, err := importer.ParseXLSX(f)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			c.JSON(http.StatusBadRequest, apierror.Coded("EMPTY_OR_MALFORMED_FILE", importer.ErrEmptyFile.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.Coded("EMPTY_OR_MALFORMED_FILE", "no se pudo leer el archivo"))
		return
	}
	if len(parsed.Rows) == 0 {
		c.JSON(http.StatusBadRequest, apierror.Coded("NO_ROWS_PARSED", "ninguna fila válida para importar"))
		return
	}

	input := service.ImportBatchInput{
		SupplierName: c.Query("supplierName"),
		RawCurrency:  c.DefaultQuery("rawCurrency", "USD"),
		Rows:         parsed.Rows,
		Notes:        parsed.Notes,
	}
	if v := c.Query("supplierId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("supplierId invalido"))
			return
		}
		input.SupplierID = &id
	}
	if v := c.Query("sourceLabel"); v != "" {
		input.SourceLabel = &v
	}

	h.runImport(c, input)
}

func (h *PriceListsHandler) runImport(c *gin.Context, input service.ImportBatchInput) {
	result, err := h.svc.ImportBatch(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierRequired):
			c.JSON(http.StatusBadRequest, apierror.Coded("SUPPLIER_REQUIRED", service.ErrSupplierRequired.Error()))
		case errors.Is(err, service.ErrNoRows):
			c.JSON(http.StatusBadRequest, apierror.Coded("NO_ROWS_PARSED", "ninguna fila válida para importar"))
		case errors.Is(err, service.ErrSupplierNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error al importar la lista"))
		}
		return
	}

	pl := result.PriceList
	pl.Supplier = &result.Supplier
	notes := result.Notes
	if notes == nil {
		notes = []string{}
	}
	c.JSON(http.StatusCreated, dto.ImportResponse{
		PriceList: service.PriceListToResponse(&pl),
		Imported:  result.Imported,
		Notes:     notes,
	})
}

// importInputFromRequest converts the JSON body into the service input,
// mapping row DTOs onto importer rows.
func importInputFromRequest(req dto.ImportBatchRequest) (service.ImportBatchInput, error) {
	input := service.ImportBatchInput{
		SupplierName: req.SupplierName,
		SourceLabel:  req.SourceLabel,
		RawCurrency:  req.RawCurrency,
	}

	if req.SupplierID != nil {
		id, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return input, errors.New("supplierId invalido")
		}
		input.SupplierID = &id
	}
	if req.EffectiveDate != nil {
		t, err := time.Parse("2006-01-02", *req.EffectiveDate)
		if err != nil {
			return input, errors.New("effectiveDate invalida, formato esperado AAAA-MM-DD")
		}
		input.EffectiveDate = &t
	}

	pct := func(p *decimal.Decimal) decimal.Decimal {
		if p == nil {
			return decimal.Zero
		}
		return *p
	}
	for _, r := range req.Rows {
		input.Rows = append(input.Rows, importer.ImportRow{
			Code:             r.Code,
			Name:             r.Name,
			Brand:            r.Brand,
			Family:           r.Family,
			Description:      r.Description,
			PhotoURL:         r.PhotoURL,
			ManufacturerInfo: r.ManufacturerInfo,
			BasePriceUsd:     r.BasePriceUsd,
			MarkupPct:        pct(r.MarkupPct),
			ImpuestosPct:     pct(r.ImpuestosPct),
			IvaPct:           pct(r.IvaPct),
			StockMiami:       r.StockMiami,
			StockLaredo:      r.StockLaredo,
		})
	}
	return input, nil
}
