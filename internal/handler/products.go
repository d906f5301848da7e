package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/santyarena1/soundtec-fin/internal/apierror"
	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/infra"
	"github.com/santyarena1/soundtec-fin/internal/middleware"
	"github.com/santyarena1/soundtec-fin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	descuento := middleware.GetClaims(c).Descuento()
	resp, err := h.svc.List(c.Request.Context(), filter, descuento)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	descuento := middleware.GetClaims(c).Descuento()
	resp, err := h.svc.Get(c.Request.Context(), id, descuento)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPDF streams a price sheet of the products in ?ids=a,b,c with prices
// computed for the calling user.
func (h *ProductsHandler) ExportPDF(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	var ids []uuid.UUID
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ids contiene un UUID invalido"))
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ids es requerido"))
		return
	}

	descuento := middleware.GetClaims(c).Descuento()
	products, err := h.svc.ExportSelection(c.Request.Context(), ids, descuento)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar la selección"))
		return
	}

	pdf, err := infra.GenerateSelectionPDF("Selección de productos", products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="seleccion.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
