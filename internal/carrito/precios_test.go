package carrito

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	out, _ := decimal.NewFromString(v)
	return out
}

func dp(v string) *decimal.Decimal {
	out := d(v)
	return &out
}

func TestPrecioBaseUsaPrecioDelTamano(t *testing.T) {
	l := Linea{
		Producto: ProductoOriginal{ID: 1, Precio: d("10")},
		Tamano:   &SeleccionTamano{ID: 2, Nombre: "Doble", PrecioFinal: dp("15")},
	}
	assert.True(t, PrecioBase(l).Equal(d("15")))

	// Sin precio final el tamaño no altera la base.
	l.Tamano.PrecioFinal = nil
	assert.True(t, PrecioBase(l).Equal(d("10")))

	l.Tamano = nil
	assert.True(t, PrecioBase(l).Equal(d("10")))
}

func TestTotalLineaEscalaAdicionalesPorCantidad(t *testing.T) {
	// (10 + 1×3) × 2 = 26
	l := Linea{
		Producto: ProductoOriginal{ID: 1, Precio: d("10")},
		Adicionales: []SeleccionAdicional{
			{ID: 5, Precio: d("3"), Cantidad: 1},
		},
		Cantidad: 2,
	}
	assert.True(t, TotalLinea(l).Equal(d("26")), "got %s", TotalLinea(l))
}

func TestTotalAdicionalesIgnoraCantidadCero(t *testing.T) {
	l := Linea{
		Producto: ProductoOriginal{ID: 1, Precio: d("10")},
		Adicionales: []SeleccionAdicional{
			{ID: 5, Precio: d("3"), Cantidad: 0},
			{ID: 6, Precio: d("2"), Cantidad: 2},
		},
	}
	assert.True(t, TotalAdicionales(l).Equal(d("4")))
}

func TestTotalCarritoSumaLineas(t *testing.T) {
	lineas := []Linea{
		{Producto: ProductoOriginal{ID: 1, Precio: d("10")}, Cantidad: 1},
		{Producto: ProductoOriginal{ID: 2, Precio: d("7.50")}, Cantidad: 2},
	}
	assert.True(t, TotalCarrito(lineas).Equal(d("25")))
	assert.True(t, TotalCarrito(nil).Equal(decimal.Zero))
}

func TestDiffTamano(t *testing.T) {
	base := d("10")

	// ambos con precio
	delta := DiffTamano(&SeleccionTamano{PrecioFinal: dp("12")}, &SeleccionTamano{PrecioFinal: dp("15")}, base)
	assert.True(t, delta.Equal(d("3")))

	// solo el nuevo con precio: el viejo contribuye la base
	delta = DiffTamano(nil, &SeleccionTamano{PrecioFinal: dp("15")}, base)
	assert.True(t, delta.Equal(d("5")))

	// solo el viejo con precio: volver a la base
	delta = DiffTamano(&SeleccionTamano{PrecioFinal: dp("15")}, nil, base)
	assert.True(t, delta.Equal(d("-5")))

	// ninguno con precio
	delta = DiffTamano(&SeleccionTamano{}, nil, base)
	assert.True(t, delta.IsZero())
}
