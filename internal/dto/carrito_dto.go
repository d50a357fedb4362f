package dto

import (
	"burgershop/internal/carrito"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SeleccionAdicionalRequest is one add-on choice; cantidad 0 keeps the add-on
// visible on the line without charging it.
type SeleccionAdicionalRequest struct {
	ID       int64 `json:"id"       validate:"required,gt=0"`
	Cantidad int   `json:"cantidad" validate:"min=0"`
}

type AgregarLineaRequest struct {
	ProductoID   int64                       `json:"producto_id"   validate:"required,gt=0"`
	TamanoID     *int64                      `json:"tamano_id"     validate:"omitempty,gt=0"`
	GuarnicionID *int64                      `json:"guarnicion_id" validate:"omitempty,gt=0"`
	Adicionales  []SeleccionAdicionalRequest `json:"adicionales"   validate:"dive"`
	MetodoDePago string                      `json:"metodo_de_pago" validate:"omitempty,oneof=efectivo transferencia mercadopago"`
}

type ActualizarCantidadRequest struct {
	// Cantidad 0 or below removes the line.
	Cantidad int `json:"cantidad"`
}

// ActualizarConfigRequest edits one line in place. Omitted fields are left
// untouched; the Quitar* flags clear an optional selection.
type ActualizarConfigRequest struct {
	TamanoID         *int64                      `json:"tamano_id"     validate:"omitempty,gt=0"`
	QuitarTamano     bool                        `json:"quitar_tamano"`
	GuarnicionID     *int64                      `json:"guarnicion_id" validate:"omitempty,gt=0"`
	QuitarGuarnicion bool                        `json:"quitar_guarnicion"`
	Adicionales      []SeleccionAdicionalRequest `json:"adicionales"   validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	carrito.Linea
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CarritoResponse struct {
	Lineas        []LineaResponse `json:"lineas"`
	Total         decimal.Decimal `json:"total"`
	CantidadItems int             `json:"cantidad_items"`
}

// NewCarritoResponse derives the response from the store's current lines.
func NewCarritoResponse(lineas []carrito.Linea) CarritoResponse {
	resp := CarritoResponse{Lineas: make([]LineaResponse, 0, len(lineas))}
	for _, l := range lineas {
		resp.Lineas = append(resp.Lineas, LineaResponse{Linea: l, Subtotal: carrito.TotalLinea(l)})
		resp.CantidadItems += l.Cantidad
	}
	resp.Total = carrito.TotalCarrito(lineas)
	return resp
}
