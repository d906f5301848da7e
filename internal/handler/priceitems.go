package handler

import (
	"errors"
	"net/http"

	"github.com/santyarena1/soundtec-fin/internal/apierror"
	"github.com/santyarena1/soundtec-fin/internal/dto"
	"github.com/santyarena1/soundtec-fin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PriceItemsHandler struct{ svc service.PriceItemService }

func NewPriceItemsHandler(svc service.PriceItemService) *PriceItemsHandler {
	return &PriceItemsHandler{svc: svc}
}

func (h *PriceItemsHandler) List(c *gin.Context) {
	var filter dto.PriceItemFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar items de precio"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PriceItemsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Item de precio no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PriceItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.UpdatePriceItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrPriceItemNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PriceItemsHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdatePriceItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	updated, err := h.svc.BulkUpdate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.BulkUpdateResponse{Updated: updated})
}
