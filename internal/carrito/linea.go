// Package carrito implements the shopping cart: line identity and merging,
// stock-aware quantity rules, pure pricing, and persistence through a small
// key-value store with a freshness window.
package carrito

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ProductoOriginal is the catalog snapshot embedded in every cart line.
// The cart never re-reads the catalog for an existing line; edits to the
// product after the line was added do not affect it.
type ProductoOriginal struct {
	ID        int64            `json:"id"`
	Nombre    string           `json:"nombre"`
	Precio    decimal.Decimal  `json:"precio"`
	Descuento *decimal.Decimal `json:"descuento,omitempty"`
	// Stock nil means unlimited.
	Stock  *int    `json:"stock,omitempty"`
	Imagen *string `json:"imagen,omitempty"`
}

// SeleccionTamano is the size chosen for a line. PrecioFinal, when the
// catalog supplies it, supersedes the product base price.
type SeleccionTamano struct {
	ID          int64            `json:"id"`
	Nombre      string           `json:"nombre"`
	PrecioFinal *decimal.Decimal `json:"precio_final,omitempty"`
}

// SeleccionGuarnicion is the zero-or-one side dish chosen for a line.
type SeleccionGuarnicion struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// SeleccionAdicional is one add-on of the line's option set. Cantidad 0 means
// "available but not chosen"; such entries are kept in the line so re-editing
// and pricing always see the full catalog-derived option set.
type SeleccionAdicional struct {
	ID       int64           `json:"id"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
}

// Linea is one configured, quantity-bearing entry in the cart.
type Linea struct {
	CartID      string               `json:"cart_id"`
	Producto    ProductoOriginal     `json:"producto_original"`
	Tamano      *SeleccionTamano     `json:"tamano,omitempty"`
	Guarnicion  *SeleccionGuarnicion `json:"guarnicion,omitempty"`
	Adicionales []SeleccionAdicional `json:"adicionales"`
	Cantidad    int                  `json:"cantidad"`
	// MetodoDePago is the method chosen when the line entered the cart.
	// Legacy: the checkout-level method supersedes it.
	MetodoDePago string `json:"metodo_de_pago,omitempty"`
}

// nuevoCartID builds the line identifier: product id + creation timestamp.
// Unique within a cart for the lifetime of the session.
func nuevoCartID(productoID int64, ahora time.Time) string {
	return fmt.Sprintf("%d-%d", productoID, ahora.UnixNano())
}

// adicionalesElegidos returns the add-ons that actually contribute to the
// line (cantidad > 0), sorted by numeric id ascending.
func adicionalesElegidos(sel []SeleccionAdicional) []SeleccionAdicional {
	elegidos := make([]SeleccionAdicional, 0, len(sel))
	for _, a := range sel {
		if a.Cantidad > 0 {
			elegidos = append(elegidos, a)
		}
	}
	sort.Slice(elegidos, func(i, j int) bool { return elegidos[i].ID < elegidos[j].ID })
	return elegidos
}

// MismaConfiguracion reports whether two lines represent the same configured
// selection: same product, same size (or both absent), same side dish (or
// both absent), and the same (id, cantidad) add-on pairs regardless of input
// order. Zero-quantity add-ons never participate in the comparison.
func MismaConfiguracion(a, b Linea) bool {
	if a.Producto.ID != b.Producto.ID {
		return false
	}
	if (a.Tamano == nil) != (b.Tamano == nil) {
		return false
	}
	if a.Tamano != nil && a.Tamano.ID != b.Tamano.ID {
		return false
	}
	if (a.Guarnicion == nil) != (b.Guarnicion == nil) {
		return false
	}
	if a.Guarnicion != nil && a.Guarnicion.ID != b.Guarnicion.ID {
		return false
	}

	ea := adicionalesElegidos(a.Adicionales)
	eb := adicionalesElegidos(b.Adicionales)
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if ea[i].ID != eb[i].ID || ea[i].Cantidad != eb[i].Cantidad {
			return false
		}
	}
	return true
}
