package dto

// ─── Checkout flow ───────────────────────────────────────────────────────────

// ConfirmarPedidoRequest submits the cart as an order. For modalidad
// "delivery" the phone and address are required; for "retiro" they are
// auto-filled with sentinel values before validation.
type ConfirmarPedidoRequest struct {
	Telefono     string  `json:"telefono"`
	Direccion    string  `json:"direccion"`
	Modalidad    string  `json:"modalidad"      validate:"required,oneof=delivery retiro"`
	MetodoDePago string  `json:"metodo_de_pago" validate:"required,oneof=efectivo transferencia mercadopago"`
	Descripcion  *string `json:"descripcion"`
}

// CheckoutEstadoResponse reports the controller state to the client,
// including the restored payment-link affordance after a reload.
type CheckoutEstadoResponse struct {
	Estado  string  `json:"estado"` // inactivo | esperando_pago
	OrderID *string `json:"order_id,omitempty"`
	MPLink  *string `json:"mp_link,omitempty"`
}

// PagarResponse carries the external destination the client must open:
// a WhatsApp link for cash/transfer, the gateway init_point for Mercado Pago.
type PagarResponse struct {
	URL string `json:"url"`
}
