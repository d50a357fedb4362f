package dto

import "github.com/shopspring/decimal"

// ─── Order creation (checkout → pedido service) ──────────────────────────────

type ClientePedido struct {
	Telefono  string `json:"telefono"  validate:"required"`
	Direccion string `json:"direccion" validate:"required"`
}

type AdicionalPedidoRequest struct {
	ID       int64 `json:"id"       validate:"required,gt=0"`
	Cantidad int   `json:"cantidad" validate:"required,gt=0"`
}

type ProductoPedidoRequest struct {
	ID           int64                    `json:"id"       validate:"required,gt=0"`
	Cantidad     int                      `json:"cantidad" validate:"required,gt=0"`
	Adicionales  []AdicionalPedidoRequest `json:"adicionales" validate:"dive"`
	IDGuarnicion *int64                   `json:"idGuarnicion,omitempty"`
	IDTam        *int64                   `json:"idTam,omitempty"`
}

type CrearPedidoRequest struct {
	Cliente      ClientePedido           `json:"cliente"      validate:"required"`
	Descripcion  *string                 `json:"descripcion"`
	MetodoDePago string                  `json:"metodoDePago" validate:"required,oneof=efectivo transferencia mercadopago"`
	Productos    []ProductoPedidoRequest `json:"productos"    validate:"required,min=1,dive"`
}

// PedidoCreadoResponse is what the checkout flow needs back: the new order id
// and, for gateway payments, the redirect URL.
type PedidoCreadoResponse struct {
	ID        string  `json:"id"`
	Numero    int64   `json:"numero"`
	InitPoint *string `json:"init_point,omitempty"`
}

// ─── Back-office workflow ────────────────────────────────────────────────────

type ActualizarPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=a_confirmar en_preparacion en_camino entregado cancelado"`
}

type ActualizarEstadoPagoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente aprobado rechazado expirado"`
}

// MPWebhookRequest is the payment-status notification posted by the gateway
// collaborator.
type MPWebhookRequest struct {
	PedidoID string `json:"pedido_id" validate:"required,uuid"`
	Estado   string `json:"estado"    validate:"required,oneof=aprobado rechazado expirado"`
}

type PedidoFilter struct {
	Estado     string `form:"estado"`
	EstadoPago string `form:"estado_pago"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type AdicionalPedidoResponse struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type ItemPedidoResponse struct {
	Producto       string                    `json:"producto"`
	Cantidad       int                       `json:"cantidad"`
	PrecioUnitario decimal.Decimal           `json:"precio_unitario"`
	Subtotal       decimal.Decimal           `json:"subtotal"`
	Tamano         *string                   `json:"tamano,omitempty"`
	Guarnicion     *string                   `json:"guarnicion,omitempty"`
	Adicionales    []AdicionalPedidoResponse `json:"adicionales"`
}

type PedidoResponse struct {
	ID           string               `json:"id"`
	Numero       int64                `json:"numero"`
	Telefono     string               `json:"telefono"`
	Direccion    string               `json:"direccion"`
	Descripcion  *string              `json:"descripcion"`
	MetodoDePago string               `json:"metodo_de_pago"`
	Estado       string               `json:"estado"`
	EstadoPago   string               `json:"estado_pago"`
	Total        decimal.Decimal      `json:"total"`
	InitPoint    *string              `json:"init_point,omitempty"`
	Items        []ItemPedidoResponse `json:"items"`
	CreatedAt    string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
