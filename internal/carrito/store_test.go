package carrito

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relojFijo is an adjustable test clock shared by store and almacen.
type relojFijo struct{ t time.Time }

func (r *relojFijo) ahora() time.Time { return r.t }

func (r *relojFijo) avanzar(d time.Duration) { r.t = r.t.Add(d) }

func nuevoStoreDePrueba(t *testing.T) (*Store, *Memoria, *relojFijo) {
	t.Helper()
	reloj := &relojFijo{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	alm := NewMemoria(reloj.ahora)
	s := NewStore(alm, "tok-1", time.Hour, reloj.ahora)
	require.NoError(t, s.Cargar(context.Background()))
	return s, alm, reloj
}

func configBase() Config {
	return Config{
		Producto: ProductoOriginal{ID: 1, Nombre: "Hamburguesa", Precio: d("10")},
	}
}

func TestAgregarMismaConfiguracionConsolida(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	l1, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)
	require.NotNil(t, l1)

	l2, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)
	require.NotNil(t, l2)

	assert.Len(t, s.Lineas(), 1)
	assert.Equal(t, 2, s.Lineas()[0].Cantidad)
	assert.Equal(t, l1.CartID, l2.CartID)
}

func TestAgregarDistintaConfiguracionCreaLinea(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	_, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)

	conTamano := configBase()
	conTamano.Tamano = &SeleccionTamano{ID: 3, Nombre: "Doble", PrecioFinal: dp("15")}
	_, err = s.Agregar(ctx, conTamano)
	require.NoError(t, err)

	assert.Len(t, s.Lineas(), 2)
}

func TestMismaConfiguracionIgnoraOrdenYCeros(t *testing.T) {
	a := Linea{
		Producto: ProductoOriginal{ID: 1},
		Adicionales: []SeleccionAdicional{
			{ID: 7, Cantidad: 2},
			{ID: 3, Cantidad: 1},
			{ID: 9, Cantidad: 0},
		},
	}
	b := Linea{
		Producto: ProductoOriginal{ID: 1},
		Adicionales: []SeleccionAdicional{
			{ID: 3, Cantidad: 1},
			{ID: 7, Cantidad: 2},
		},
	}
	assert.True(t, MismaConfiguracion(a, b))

	// La misma selección con otra cantidad es otra configuración.
	b.Adicionales[0].Cantidad = 2
	assert.False(t, MismaConfiguracion(a, b))
}

func TestAgregarConStockLimitadoNoSupera(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	stock := 3
	cfg := configBase()
	cfg.Producto.Stock = &stock

	for i := 0; i < 3; i++ {
		l, err := s.Agregar(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, l)
	}

	// Cuarto intento: silencioso, sin error y sin cambio.
	l, err := s.Agregar(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.Equal(t, 3, s.Lineas()[0].Cantidad)
}

func TestActualizarCantidad(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	stock := 5
	cfg := configBase()
	cfg.Producto.Stock = &stock
	l, err := s.Agregar(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, s.ActualizarCantidad(ctx, l.CartID, 4))
	assert.Equal(t, 4, s.Lineas()[0].Cantidad)

	// Por encima del stock: sin cambios.
	require.NoError(t, s.ActualizarCantidad(ctx, l.CartID, 9))
	assert.Equal(t, 4, s.Lineas()[0].Cantidad)

	// Cero o negativo elimina la línea.
	require.NoError(t, s.ActualizarCantidad(ctx, l.CartID, 0))
	assert.Empty(t, s.Lineas())
}

func TestActualizarConfigDevuelveDeltaDeTamano(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	l, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)

	delta, err := s.ActualizarConfig(ctx, l.CartID, CambioConfig{
		Tamano: &SeleccionTamano{ID: 3, Nombre: "Doble", PrecioFinal: dp("15")},
	})
	require.NoError(t, err)
	assert.True(t, delta.Equal(d("5")))

	// Quitar el tamaño vuelve a la base.
	delta, err = s.ActualizarConfig(ctx, l.CartID, CambioConfig{QuitarTamano: true})
	require.NoError(t, err)
	assert.True(t, delta.Equal(d("-5")))

	// La cantidad nunca cambia por una edición de configuración.
	assert.Equal(t, 1, s.Lineas()[0].Cantidad)
}

func TestLineaConservaAdicionalesEnCero(t *testing.T) {
	s, _, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	cfg := configBase()
	cfg.Adicionales = []SeleccionAdicional{
		{ID: 5, Nombre: "Bacon", Precio: d("3"), Cantidad: 0},
		{ID: 6, Nombre: "Cheddar", Precio: d("2"), Cantidad: 1},
	}
	l, err := s.Agregar(ctx, cfg)
	require.NoError(t, err)

	// El set completo queda en la línea; solo los elegidos cobran.
	assert.Len(t, l.Adicionales, 2)
	assert.True(t, TotalLinea(*l).Equal(d("12")))
}

func TestPersistenciaYRecarga(t *testing.T) {
	s, alm, reloj := nuevoStoreDePrueba(t)
	ctx := context.Background()

	_, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)

	s2 := NewStore(alm, "tok-1", time.Hour, reloj.ahora)
	require.NoError(t, s2.Cargar(ctx))
	require.Len(t, s2.Lineas(), 1)
	assert.Equal(t, s.Lineas()[0].CartID, s2.Lineas()[0].CartID)
}

func TestCarritoVencidoSePurga(t *testing.T) {
	s, alm, reloj := nuevoStoreDePrueba(t)
	ctx := context.Background()

	_, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)

	reloj.avanzar(2 * time.Hour)

	s2 := NewStore(alm, "tok-1", time.Hour, reloj.ahora)
	require.NoError(t, s2.Cargar(ctx))
	assert.Empty(t, s2.Lineas())

	// Las claves también desaparecen del almacén.
	_, err = alm.Get(ctx, "cart:tok-1")
	assert.ErrorIs(t, err, ErrClaveInexistente)
}

func TestPayloadCorruptoSeTrataComoVencido(t *testing.T) {
	s, alm, reloj := nuevoStoreDePrueba(t)
	ctx := context.Background()

	_, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)

	require.NoError(t, alm.Set(ctx, "cart:tok-1", "{no es json", time.Hour))

	s2 := NewStore(alm, "tok-1", time.Hour, reloj.ahora)
	require.NoError(t, s2.Cargar(ctx))
	assert.Empty(t, s2.Lineas())
}

func TestVaciarEliminaClaves(t *testing.T) {
	s, alm, _ := nuevoStoreDePrueba(t)
	ctx := context.Background()

	_, err := s.Agregar(ctx, configBase())
	require.NoError(t, err)
	require.NoError(t, s.Vaciar(ctx))

	_, err = alm.Get(ctx, "cart:tok-1")
	assert.ErrorIs(t, err, ErrClaveInexistente)
	_, err = alm.Get(ctx, "cart_timestamp:tok-1")
	assert.ErrorIs(t, err, ErrClaveInexistente)
}
