package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"burgershop/internal/carrito"
	"burgershop/internal/dto"
	"burgershop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stub order creator ───────────────────────────────────────────────────────

type stubCreador struct {
	resp     *dto.PedidoCreadoResponse
	err      error
	llamadas int
	ultimo   dto.CrearPedidoRequest
}

func (s *stubCreador) Crear(_ context.Context, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error) {
	s.llamadas++
	s.ultimo = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func dec(v string) decimal.Decimal {
	out, _ := decimal.NewFromString(v)
	return out
}

func armarEntorno(t *testing.T, creador CreadorPedidos) (*Controller, *carrito.Store, carrito.Almacen) {
	t.Helper()
	alm := carrito.NewMemoria(nil)
	cart := carrito.NewStore(alm, "tok-1", time.Hour, nil)
	require.NoError(t, cart.Cargar(context.Background()))

	destinos := Destinos{WhatsAppNumero: "5491122334455"}
	ctrl := NewController(cart, alm, creador, destinos, "tok-1")
	require.NoError(t, ctrl.Restaurar(context.Background()))
	return ctrl, cart, alm
}

func cargarCarrito(t *testing.T, cart *carrito.Store) {
	t.Helper()
	_, err := cart.Agregar(context.Background(), carrito.Config{
		Producto: carrito.ProductoOriginal{ID: 1, Nombre: "Hamburguesa", Precio: dec("10")},
		Adicionales: []carrito.SeleccionAdicional{
			{ID: 5, Nombre: "Bacon", Precio: dec("3"), Cantidad: 1},
			{ID: 6, Nombre: "Cheddar", Precio: dec("2"), Cantidad: 0},
		},
	})
	require.NoError(t, err)
}

func reqDelivery() dto.ConfirmarPedidoRequest {
	return dto.ConfirmarPedidoRequest{
		Telefono:     "1122334455",
		Direccion:    "Av. Siempreviva 742",
		Modalidad:    "delivery",
		MetodoDePago: model.MetodoEfectivo,
	}
}

// ── Confirmar ────────────────────────────────────────────────────────────────

func TestConfirmarCarritoVacio(t *testing.T) {
	ctrl, _, _ := armarEntorno(t, &stubCreador{})
	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	assert.ErrorIs(t, err, ErrCarritoVacio)
	assert.Equal(t, Inactivo, ctrl.Estado())
}

func TestConfirmarDeliverySinDatos(t *testing.T) {
	creador := &stubCreador{}
	ctrl, cart, _ := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	req := reqDelivery()
	req.Direccion = ""
	_, err := ctrl.Confirmar(context.Background(), req)
	assert.ErrorIs(t, err, ErrDatosEntrega)
	assert.Zero(t, creador.llamadas)
}

func TestConfirmarRetiroCompletaSentinel(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 7}}
	ctrl, cart, _ := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	req := dto.ConfirmarPedidoRequest{Modalidad: "retiro", MetodoDePago: model.MetodoEfectivo}
	p, err := ctrl.Confirmar(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, SentinelRetiro, creador.ultimo.Cliente.Telefono)
	assert.Equal(t, SentinelRetiro, creador.ultimo.Cliente.Direccion)
	assert.Equal(t, EsperandoPago, ctrl.Estado())
	assert.Equal(t, int64(7), p.Numero)
}

func TestConfirmarProyectaSoloAdicionalesElegidos(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 1}}
	ctrl, cart, _ := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.NoError(t, err)

	require.Len(t, creador.ultimo.Productos, 1)
	require.Len(t, creador.ultimo.Productos[0].Adicionales, 1)
	assert.Equal(t, int64(5), creador.ultimo.Productos[0].Adicionales[0].ID)
}

func TestConfirmarDobleEnvio(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 1}}
	ctrl, cart, _ := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.NoError(t, err)

	// Segundo envío sobre el mismo controlador: rechazado por estado.
	_, err = ctrl.Confirmar(context.Background(), reqDelivery())
	assert.ErrorIs(t, err, ErrEnvioEnCurso)
	assert.Equal(t, 1, creador.llamadas)
}

func TestConfirmarFalloDejaTodoComoEstaba(t *testing.T) {
	creador := &stubCreador{err: errors.New("pasarela caída")}
	ctrl, cart, alm := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.Error(t, err)

	assert.Equal(t, Inactivo, ctrl.Estado())
	assert.Len(t, cart.Lineas(), 1)
	_, err = alm.Get(context.Background(), "pedido_mp_temp:tok-1")
	assert.ErrorIs(t, err, carrito.ErrClaveInexistente)

	// El lock se libera: un reintento posterior puede prosperar.
	creador.err = nil
	creador.resp = &dto.PedidoCreadoResponse{ID: "p-1", Numero: 1}
	_, err = ctrl.Confirmar(context.Background(), reqDelivery())
	assert.NoError(t, err)
}

func TestConfirmarMercadoPagoPersisteStatus(t *testing.T) {
	link := "https://mp.example/init"
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 1, InitPoint: &link}}
	ctrl, cart, alm := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	req := reqDelivery()
	req.MetodoDePago = model.MetodoMercadoPago
	p, err := ctrl.Confirmar(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, link, p.MPLink)

	status, err := alm.Get(context.Background(), "mp_status:tok-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
}

// ── Restaurar ────────────────────────────────────────────────────────────────

func TestRestaurarPendientePersistido(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 9}}
	ctrl, cart, alm := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.NoError(t, err)

	// Nueva request: controlador fresco sobre el mismo almacén.
	cart2 := carrito.NewStore(alm, "tok-1", time.Hour, nil)
	require.NoError(t, cart2.Cargar(context.Background()))
	ctrl2 := NewController(cart2, alm, creador, Destinos{}, "tok-1")
	require.NoError(t, ctrl2.Restaurar(context.Background()))

	assert.Equal(t, EsperandoPago, ctrl2.Estado())
	require.NotNil(t, ctrl2.Pendiente())
	assert.Equal(t, int64(9), ctrl2.Pendiente().Numero)
}

func TestRestaurarPendienteCorrupto(t *testing.T) {
	alm := carrito.NewMemoria(nil)
	require.NoError(t, alm.Set(context.Background(), "pedido_mp_temp:tok-1", "{roto", time.Hour))

	cart := carrito.NewStore(alm, "tok-1", time.Hour, nil)
	require.NoError(t, cart.Cargar(context.Background()))
	ctrl := NewController(cart, alm, &stubCreador{}, Destinos{}, "tok-1")
	require.NoError(t, ctrl.Restaurar(context.Background()))

	assert.Equal(t, Inactivo, ctrl.Estado())
	_, err := alm.Get(context.Background(), "pedido_mp_temp:tok-1")
	assert.ErrorIs(t, err, carrito.ErrClaveInexistente)
}

// ── Pagar / Abandonar ────────────────────────────────────────────────────────

func TestPagarResuelveYLimpia(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 4}}
	ctrl, cart, alm := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.NoError(t, err)

	url, err := ctrl.Pagar(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://wa.me/5491122334455?text="))
	assert.Contains(t, url, "4")

	assert.Equal(t, Inactivo, ctrl.Estado())
	assert.Empty(t, cart.Lineas())
	_, err = alm.Get(context.Background(), "pedido_mp_temp:tok-1")
	assert.ErrorIs(t, err, carrito.ErrClaveInexistente)

	// Sin pendiente, pagar de nuevo falla.
	_, err = ctrl.Pagar(context.Background())
	assert.ErrorIs(t, err, ErrSinPendiente)
}

func TestAbandonarDescartaTodo(t *testing.T) {
	creador := &stubCreador{resp: &dto.PedidoCreadoResponse{ID: "p-1", Numero: 4}}
	ctrl, cart, alm := armarEntorno(t, creador)
	cargarCarrito(t, cart)

	_, err := ctrl.Confirmar(context.Background(), reqDelivery())
	require.NoError(t, err)

	require.NoError(t, ctrl.Abandonar(context.Background()))
	assert.Equal(t, Inactivo, ctrl.Estado())
	assert.Empty(t, cart.Lineas())
	_, err = alm.Get(context.Background(), "mp_status:tok-1")
	assert.ErrorIs(t, err, carrito.ErrClaveInexistente)
}

// ── Destinos ─────────────────────────────────────────────────────────────────

func TestDestinosURL(t *testing.T) {
	d := Destinos{WhatsAppNumero: "5491122334455"}

	p := &Pendiente{Numero: 12, Pedido: dto.CrearPedidoRequest{MetodoDePago: model.MetodoTransferencia}}
	url, err := d.URL(p)
	require.NoError(t, err)
	assert.Contains(t, url, "wa.me/5491122334455")
	assert.Contains(t, url, "transferencia")

	p = &Pendiente{Numero: 12, Pedido: dto.CrearPedidoRequest{MetodoDePago: model.MetodoMercadoPago}, MPLink: "https://mp/init"}
	url, err = d.URL(p)
	require.NoError(t, err)
	assert.Equal(t, "https://mp/init", url)

	p.MPLink = ""
	_, err = d.URL(p)
	assert.ErrorIs(t, err, ErrSinLinkPago)
}
