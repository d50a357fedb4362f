package carrito

import "github.com/shopspring/decimal"

// precios.go — pure pricing over cart lines. No side effects; every function
// derives its result from the line's snapshot alone.

// PrecioBase returns the per-unit base price of a line: the size's final
// price when present, otherwise the product's base price.
func PrecioBase(l Linea) decimal.Decimal {
	if l.Tamano != nil && l.Tamano.PrecioFinal != nil {
		return *l.Tamano.PrecioFinal
	}
	return l.Producto.Precio
}

// TotalAdicionales sums precio × cantidad over the add-ons with cantidad > 0.
func TotalAdicionales(l Linea) decimal.Decimal {
	total := decimal.Zero
	for _, a := range l.Adicionales {
		if a.Cantidad > 0 {
			total = total.Add(a.Precio.Mul(decimal.NewFromInt(int64(a.Cantidad))))
		}
	}
	return total
}

// TotalLinea is (base + adicionales) × cantidad. Add-on prices scale with the
// line quantity: they are per unit of the base item, not flat additions.
func TotalLinea(l Linea) decimal.Decimal {
	return PrecioBase(l).Add(TotalAdicionales(l)).Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// TotalCarrito sums TotalLinea over all lines.
func TotalCarrito(lineas []Linea) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(TotalLinea(l))
	}
	return total
}

// DiffTamano returns the per-unit price change of replacing a line's size
// in place: the new size's contribution minus the old one's, where a size
// without a final price (or no size at all) contributes the product base
// price. Four cases: both priced, only new priced, only old priced, neither.
func DiffTamano(viejo, nuevo *SeleccionTamano, precioProducto decimal.Decimal) decimal.Decimal {
	contribucion := func(t *SeleccionTamano) decimal.Decimal {
		if t != nil && t.PrecioFinal != nil {
			return *t.PrecioFinal
		}
		return precioProducto
	}
	return contribucion(nuevo).Sub(contribucion(viejo))
}
