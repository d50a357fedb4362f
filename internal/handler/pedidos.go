package handler

import (
	"errors"
	"net/http"

	"burgershop/internal/apierror"
	"burgershop/internal/dto"
	"burgershop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Listar GET /v1/admin/pedidos
func (h *PedidosHandler) Listar(c *gin.Context) {
	var filter dto.PedidoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /v1/admin/pedidos/:id
func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, svcErr := h.svc.Obtener(c.Request.Context(), id)
	if svcErr != nil {
		c.JSON(http.StatusNotFound, apierror.New("Pedido no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado PATCH /v1/admin/pedidos/:id/estado
func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if svcErr := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado); svcErr != nil {
		h.errorPedido(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActualizarEstadoPago PATCH /v1/admin/pedidos/:id/estado-pago
func (h *PedidosHandler) ActualizarEstadoPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarEstadoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if svcErr := h.svc.ActualizarEstadoPago(c.Request.Context(), id, req.Estado); svcErr != nil {
		h.errorPedido(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// DescargarPDF GET /v1/admin/pedidos/:id/pdf — kitchen ticket.
func (h *PedidosHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	path, svcErr := h.svc.TicketPDF(c.Request.Context(), id)
	if svcErr != nil {
		h.errorPedido(c, svcErr)
		return
	}
	c.FileAttachment(path, "ticket.pdf")
}

// Webhook POST /v1/pagos/webhook — gateway payment notifications. Public
// endpoint; the pedido id acts as the correlation reference.
func (h *PedidosHandler) Webhook(c *gin.Context) {
	var req dto.MPWebhookRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ProcesarWebhook(c.Request.Context(), req); err != nil {
		h.errorPedido(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *PedidosHandler) errorPedido(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPedidoNoEncontrado) {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
