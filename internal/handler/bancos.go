package handler

import (
	"net/http"

	"burgershop/internal/apierror"
	"burgershop/internal/dto"
	"burgershop/internal/service"

	"github.com/gin-gonic/gin"
)

type BancosHandler struct{ svc service.BancoService }

func NewBancosHandler(svc service.BancoService) *BancosHandler {
	return &BancosHandler{svc: svc}
}

// Crear POST /v1/admin/bancos
func (h *BancosHandler) Crear(c *gin.Context) {
	var req dto.CrearBancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/bancos — public: shown to customers paying by transfer.
func (h *BancosHandler) Listar(c *gin.Context) {
	list, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar bancos"))
		return
	}
	c.JSON(http.StatusOK, dto.BancoListResponse{Data: list})
}

// Actualizar PUT /v1/admin/bancos/:id
func (h *BancosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarBancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Actualizar(c.Request.Context(), id, req)
	if svcErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar DELETE /v1/admin/bancos/:id
func (h *BancosHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := h.svc.Desactivar(c.Request.Context(), id); svcErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
