package handler

import (
	"errors"
	"net/http"

	"burgershop/internal/apierror"
	"burgershop/internal/carrito"
	"burgershop/internal/checkout"
	"burgershop/internal/dto"
	"burgershop/internal/middleware"
	"burgershop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler mounts a fresh checkout controller per request on top of
// the session's cart store and restores its persisted state.
type CheckoutHandler struct {
	carritoSvc service.CarritoService
	creador    checkout.CreadorPedidos
	destinos   checkout.Destinos
	alm        carrito.Almacen
}

func NewCheckoutHandler(carritoSvc service.CarritoService, creador checkout.CreadorPedidos, destinos checkout.Destinos, alm carrito.Almacen) *CheckoutHandler {
	return &CheckoutHandler{carritoSvc: carritoSvc, creador: creador, destinos: destinos, alm: alm}
}

func (h *CheckoutHandler) controller(c *gin.Context) (*checkout.Controller, error) {
	token := middleware.GetSesion(c)
	store, err := h.carritoSvc.Store(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	ctrl := checkout.NewController(store, h.alm, h.creador, h.destinos, token)
	if err := ctrl.Restaurar(c.Request.Context()); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// Estado GET /v1/checkout — reports the restored state, including the
// payment-link affordance after a reload.
func (h *CheckoutHandler) Estado(c *gin.Context) {
	ctrl, err := h.controller(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al restaurar el checkout"))
		return
	}
	resp := dto.CheckoutEstadoResponse{Estado: ctrl.Estado().String()}
	if p := ctrl.Pendiente(); p != nil {
		resp.OrderID = &p.OrderID
		if p.MPLink != "" {
			resp.MPLink = &p.MPLink
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Confirmar POST /v1/checkout/confirmar — submits the cart as an order.
func (h *CheckoutHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctrl, err := h.controller(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al restaurar el checkout"))
		return
	}
	p, err := ctrl.Confirmar(c.Request.Context(), req)
	if err != nil {
		h.errorCheckout(c, err)
		return
	}
	resp := dto.CheckoutEstadoResponse{Estado: ctrl.Estado().String(), OrderID: &p.OrderID}
	if p.MPLink != "" {
		resp.MPLink = &p.MPLink
	}
	c.JSON(http.StatusCreated, resp)
}

// Pagar POST /v1/checkout/pagar — hands out the external destination and
// resolves the session.
func (h *CheckoutHandler) Pagar(c *gin.Context) {
	ctrl, err := h.controller(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al restaurar el checkout"))
		return
	}
	url, err := ctrl.Pagar(c.Request.Context())
	if err != nil {
		h.errorCheckout(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PagarResponse{URL: url})
}

// Abandonar POST /v1/checkout/abandonar — drops the pending order and
// empties the cart.
func (h *CheckoutHandler) Abandonar(c *gin.Context) {
	ctrl, err := h.controller(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al restaurar el checkout"))
		return
	}
	if err := ctrl.Abandonar(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al abandonar el checkout"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) errorCheckout(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrCarritoVacio),
		errors.Is(err, checkout.ErrDatosEntrega),
		errors.Is(err, checkout.ErrSinLinkPago):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, checkout.ErrEnvioEnCurso):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, checkout.ErrSinPendiente):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrPasarelaNoDisponible):
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
