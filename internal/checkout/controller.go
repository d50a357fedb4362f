// Package checkout orchestrates order submission and the pending-payment
// session: validation, the Inactivo → Enviando → EsperandoPago state machine,
// persistence of the gateway redirect across reloads, and cleanup on payment
// or abandonment.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"burgershop/internal/carrito"
	"burgershop/internal/dto"
	"burgershop/internal/model"

	"github.com/rs/zerolog/log"
)

// Estado is the controller's position in the checkout state machine.
type Estado int

const (
	Inactivo Estado = iota
	Enviando
	EsperandoPago
)

func (e Estado) String() string {
	switch e {
	case Enviando:
		return "enviando"
	case EsperandoPago:
		return "esperando_pago"
	default:
		return "inactivo"
	}
}

var (
	ErrCarritoVacio = errors.New("el carrito está vacío")
	ErrDatosEntrega = errors.New("teléfono y dirección son obligatorios para delivery")
	ErrEnvioEnCurso = errors.New("ya hay un envío de pedido en curso")
	ErrSinPendiente = errors.New("no hay ningún pedido pendiente de pago")
)

// SentinelRetiro fills the delivery fields for pickup orders so downstream
// consumers always see non-empty values.
const SentinelRetiro = "Retiro en local"

// Session storage keys, namespaced per session token.
const (
	claveMPStatus  = "mp_status:"
	clavePendiente = "pedido_mp_temp:"
	claveLock      = "checkout_lock:"
)

const (
	lockTTL      = 30 * time.Second
	pendienteTTL = 24 * time.Hour
)

// Pendiente is the persisted record of an order awaiting completion through
// an external destination.
type Pendiente struct {
	OrderID string                 `json:"orderId"`
	Numero  int64                  `json:"numero"`
	Pedido  dto.CrearPedidoRequest `json:"pedido"`
	MPLink  string                 `json:"mpLink,omitempty"`
}

// CreadorPedidos creates the order server-side. Implemented by the pedido
// service; stubbed in tests.
type CreadorPedidos interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error)
}

// Controller drives one checkout session. It is rebuilt per request from the
// session store (Restaurar); the submission guard is structural: a second
// Confirmar is refused by state and by a cross-request lock, independent of
// whether the UI disabled its button.
type Controller struct {
	cart      *carrito.Store
	alm       carrito.Almacen
	creador   CreadorPedidos
	destinos  Destinos
	token     string
	estado    Estado
	pendiente *Pendiente
}

func NewController(cart *carrito.Store, alm carrito.Almacen, creador CreadorPedidos, destinos Destinos, token string) *Controller {
	return &Controller{cart: cart, alm: alm, creador: creador, destinos: destinos, token: token}
}

// Restaurar rebuilds the controller state from the session store. A persisted
// Pendiente puts the controller back in EsperandoPago with the payment-link
// affordance; the cart itself is never restored into this state.
func (c *Controller) Restaurar(ctx context.Context) error {
	c.estado = Inactivo
	c.pendiente = nil

	crudo, err := c.alm.Get(ctx, clavePendiente+c.token)
	if errors.Is(err, carrito.ErrClaveInexistente) {
		return nil
	}
	if err != nil {
		return err
	}

	var p Pendiente
	if err := json.Unmarshal([]byte(crudo), &p); err != nil {
		log.Warn().Str("token", c.token).Err(err).Msg("checkout: pendiente corrupto, descartado")
		return c.limpiarSesion(ctx)
	}
	c.pendiente = &p
	c.estado = EsperandoPago
	return nil
}

func (c *Controller) Estado() Estado        { return c.estado }
func (c *Controller) Pendiente() *Pendiente { return c.pendiente }

// Confirmar validates and submits the cart as an order. On success the
// pending session is persisted and the controller moves to EsperandoPago;
// on any failure it stays Inactivo with nothing persisted and the cart
// untouched. There is no automatic retry.
func (c *Controller) Confirmar(ctx context.Context, req dto.ConfirmarPedidoRequest) (*Pendiente, error) {
	switch c.estado {
	case Enviando:
		return nil, ErrEnvioEnCurso
	case EsperandoPago:
		return nil, ErrEnvioEnCurso
	}
	if len(c.cart.Lineas()) == 0 {
		return nil, ErrCarritoVacio
	}

	if req.Modalidad == "retiro" {
		req.Telefono = SentinelRetiro
		req.Direccion = SentinelRetiro
	} else if req.Telefono == "" || req.Direccion == "" {
		return nil, ErrDatosEntrega
	}

	// Cross-request in-flight guard: a concurrent submit for the same
	// session fails fast instead of creating a duplicate order.
	obtenido, err := c.alm.SetNX(ctx, claveLock+c.token, "1", lockTTL)
	if err != nil {
		return nil, err
	}
	if !obtenido {
		return nil, ErrEnvioEnCurso
	}
	defer func() { _ = c.alm.Del(ctx, claveLock+c.token) }()

	c.estado = Enviando
	payload := armarPedido(req, c.cart.Lineas())

	resp, err := c.creador.Crear(ctx, payload)
	if err != nil {
		c.estado = Inactivo
		return nil, err
	}

	p := &Pendiente{OrderID: resp.ID, Numero: resp.Numero, Pedido: payload}
	if resp.InitPoint != nil {
		p.MPLink = *resp.InitPoint
	}

	data, err := json.Marshal(p)
	if err != nil {
		c.estado = Inactivo
		return nil, err
	}
	if err := c.alm.Set(ctx, clavePendiente+c.token, string(data), pendienteTTL); err != nil {
		c.estado = Inactivo
		return nil, err
	}
	if payload.MetodoDePago == model.MetodoMercadoPago {
		if err := c.alm.Set(ctx, claveMPStatus+c.token, "pending", pendienteTTL); err != nil {
			c.estado = Inactivo
			return nil, err
		}
	}

	c.pendiente = p
	c.estado = EsperandoPago
	return p, nil
}

// Pagar resolves the external destination for the pending order and clears
// the cart and session immediately after handing it out, regardless of
// whether the customer follows through.
func (c *Controller) Pagar(ctx context.Context) (string, error) {
	if c.estado != EsperandoPago || c.pendiente == nil {
		return "", ErrSinPendiente
	}
	url, err := c.destinos.URL(c.pendiente)
	if err != nil {
		return "", err
	}
	if err := c.resolver(ctx); err != nil {
		return "", err
	}
	return url, nil
}

// Abandonar treats leaving the checkout with a pending payment as
// abandonment: the cart and the pending session are both discarded so a
// created-but-unpaid order never leaves stale client state behind.
func (c *Controller) Abandonar(ctx context.Context) error {
	return c.resolver(ctx)
}

func (c *Controller) resolver(ctx context.Context) error {
	if err := c.cart.Vaciar(ctx); err != nil {
		return err
	}
	if err := c.limpiarSesion(ctx); err != nil {
		return err
	}
	c.pendiente = nil
	c.estado = Inactivo
	return nil
}

func (c *Controller) limpiarSesion(ctx context.Context) error {
	return c.alm.Del(ctx, clavePendiente+c.token, claveMPStatus+c.token)
}

// armarPedido projects the cart lines into the order-creation payload. Only
// add-ons with cantidad > 0 travel; zero-quantity entries are a cart-display
// concern.
func armarPedido(req dto.ConfirmarPedidoRequest, lineas []carrito.Linea) dto.CrearPedidoRequest {
	productos := make([]dto.ProductoPedidoRequest, 0, len(lineas))
	for _, l := range lineas {
		p := dto.ProductoPedidoRequest{
			ID:       l.Producto.ID,
			Cantidad: l.Cantidad,
		}
		for _, a := range l.Adicionales {
			if a.Cantidad > 0 {
				p.Adicionales = append(p.Adicionales, dto.AdicionalPedidoRequest{ID: a.ID, Cantidad: a.Cantidad})
			}
		}
		if l.Guarnicion != nil {
			id := l.Guarnicion.ID
			p.IDGuarnicion = &id
		}
		if l.Tamano != nil {
			id := l.Tamano.ID
			p.IDTam = &id
		}
		productos = append(productos, p)
	}
	return dto.CrearPedidoRequest{
		Cliente:      dto.ClientePedido{Telefono: req.Telefono, Direccion: req.Direccion},
		Descripcion:  req.Descripcion,
		MetodoDePago: req.MetodoDePago,
		Productos:    productos,
	}
}
