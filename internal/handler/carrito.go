package handler

import (
	"errors"
	"net/http"

	"burgershop/internal/apierror"
	"burgershop/internal/dto"
	"burgershop/internal/middleware"
	"burgershop/internal/service"

	"github.com/gin-gonic/gin"
)

// CarritoHandler exposes the session cart. Every route runs behind the
// session middleware; the token keys the server-side cart.
type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

// Ver GET /v1/carrito
func (h *CarritoHandler) Ver(c *gin.Context) {
	resp, err := h.svc.Ver(c.Request.Context(), middleware.GetSesion(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar el carrito"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agregar POST /v1/carrito/lineas
func (h *CarritoHandler) Agregar(c *gin.Context) {
	var req dto.AgregarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Agregar(c.Request.Context(), middleware.GetSesion(c), req)
	if err != nil {
		h.errorCarrito(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCantidad PATCH /v1/carrito/lineas/:cartId/cantidad
func (h *CarritoHandler) ActualizarCantidad(c *gin.Context) {
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCantidad(c.Request.Context(), middleware.GetSesion(c), c.Param("cartId"), req.Cantidad)
	if err != nil {
		h.errorCarrito(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarConfig PATCH /v1/carrito/lineas/:cartId
func (h *CarritoHandler) ActualizarConfig(c *gin.Context) {
	var req dto.ActualizarConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarConfig(c.Request.Context(), middleware.GetSesion(c), c.Param("cartId"), req)
	if err != nil {
		h.errorCarrito(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Quitar DELETE /v1/carrito/lineas/:cartId
func (h *CarritoHandler) Quitar(c *gin.Context) {
	resp, err := h.svc.Quitar(c.Request.Context(), middleware.GetSesion(c), c.Param("cartId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al quitar la línea"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Vaciar DELETE /v1/carrito
func (h *CarritoHandler) Vaciar(c *gin.Context) {
	if err := h.svc.Vaciar(c.Request.Context(), middleware.GetSesion(c)); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al vaciar el carrito"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CarritoHandler) errorCarrito(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSinStock):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrOpcionNoDisponible):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error al actualizar el carrito"))
	}
}
