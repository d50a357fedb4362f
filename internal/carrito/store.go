package carrito

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Storage keys, namespaced per session token.
const (
	claveCart   = "cart:"
	claveCartTS = "cart_timestamp:"
)

// Config is the selection a customer confirmed for one product.
type Config struct {
	Producto     ProductoOriginal
	Tamano       *SeleccionTamano
	Guarnicion   *SeleccionGuarnicion
	Adicionales  []SeleccionAdicional
	MetodoDePago string
}

// CambioConfig edits an existing line. Absent fields leave the line
// untouched; Quitar* flags clear an optional selection explicitly so that
// "set to nothing" and "don't touch" stay distinguishable.
type CambioConfig struct {
	Tamano           *SeleccionTamano
	QuitarTamano     bool
	Guarnicion       *SeleccionGuarnicion
	QuitarGuarnicion bool
	// Adicionales nil = untouched. A non-nil slice replaces the whole
	// option set (zero-quantity entries included).
	Adicionales []SeleccionAdicional
}

// Store owns the ordered list of cart lines for one session and keeps it
// persisted through an Almacen. Mutations that leave the cart non-empty
// write the full line list plus a timestamp; an empty cart removes both
// keys. Not safe for concurrent use; callers serialize per session.
type Store struct {
	alm     Almacen
	token   string
	ventana time.Duration
	ahora   func() time.Time
	lineas  []Linea
}

// NewStore builds a Store for the given session token. ventana is the
// freshness window applied when restoring persisted lines; a nil clock
// defaults to time.Now. Call Cargar before reading or mutating.
func NewStore(alm Almacen, token string, ventana time.Duration, ahora func() time.Time) *Store {
	if ahora == nil {
		ahora = time.Now
	}
	return &Store{alm: alm, token: token, ventana: ventana, ahora: ahora}
}

// Cargar restores persisted lines when the saved timestamp is within the
// freshness window; otherwise it purges storage and starts empty. Corrupt
// payloads are treated the same as stale ones.
func (s *Store) Cargar(ctx context.Context) error {
	s.lineas = nil

	crudoTS, err := s.alm.Get(ctx, claveCartTS+s.token)
	if err != nil {
		return s.purgar(ctx, err)
	}
	ms, err := strconv.ParseInt(crudoTS, 10, 64)
	if err != nil {
		log.Warn().Str("token", s.token).Err(err).Msg("carrito: timestamp corrupto, descartado")
		return s.purgar(ctx, nil)
	}
	if s.ahora().Sub(time.UnixMilli(ms)) > s.ventana {
		return s.purgar(ctx, nil)
	}

	crudo, err := s.alm.Get(ctx, claveCart+s.token)
	if err != nil {
		return s.purgar(ctx, err)
	}
	var lineas []Linea
	if err := json.Unmarshal([]byte(crudo), &lineas); err != nil {
		log.Warn().Str("token", s.token).Err(err).Msg("carrito: payload corrupto, descartado")
		return s.purgar(ctx, nil)
	}
	s.lineas = lineas
	return nil
}

func (s *Store) purgar(ctx context.Context, causa error) error {
	if causa != nil && causa != ErrClaveInexistente {
		return causa
	}
	return s.alm.Del(ctx, claveCart+s.token, claveCartTS+s.token)
}

// Lineas returns the current lines in insertion order.
func (s *Store) Lineas() []Linea { return s.lineas }

// Total derives the cart-wide total.
func (s *Store) Total() decimal.Decimal { return TotalCarrito(s.lineas) }

// CantidadItems is the unit count across lines, not the line count.
func (s *Store) CantidadItems() int {
	n := 0
	for _, l := range s.lineas {
		n += l.Cantidad
	}
	return n
}

// Buscar returns the line with the given cart id, or nil.
func (s *Store) Buscar(cartID string) *Linea {
	for i := range s.lineas {
		if s.lineas[i].CartID == cartID {
			return &s.lineas[i]
		}
	}
	return nil
}

// ExcederiaStock reports whether growing the line's quantity by delta would
// exceed the product's stock. Callers use it to warn the user before a
// mutation silently no-ops.
func (s *Store) ExcederiaStock(cartID string, delta int) bool {
	l := s.Buscar(cartID)
	if l == nil || l.Producto.Stock == nil {
		return false
	}
	return l.Cantidad+delta > *l.Producto.Stock
}

// Agregar builds a quantity-1 candidate from cfg and either merges it into
// an existing line with the same configuration or appends it. When stock
// forbids growing the matched line the cart is left unchanged and nil is
// returned with no error: stock exhaustion is a silent no-op at this layer,
// user feedback is the caller's job.
func (s *Store) Agregar(ctx context.Context, cfg Config) (*Linea, error) {
	candidata := Linea{
		CartID:       nuevoCartID(cfg.Producto.ID, s.ahora()),
		Producto:     cfg.Producto,
		Tamano:       cfg.Tamano,
		Guarnicion:   cfg.Guarnicion,
		Adicionales:  cfg.Adicionales,
		Cantidad:     1,
		MetodoDePago: cfg.MetodoDePago,
	}

	for i := range s.lineas {
		if !MismaConfiguracion(s.lineas[i], candidata) {
			continue
		}
		if stock := s.lineas[i].Producto.Stock; stock != nil && s.lineas[i].Cantidad >= *stock {
			return nil, nil
		}
		s.lineas[i].Cantidad++
		if err := s.persistir(ctx); err != nil {
			return nil, err
		}
		return &s.lineas[i], nil
	}

	if cfg.Producto.Stock != nil && *cfg.Producto.Stock < 1 {
		return nil, nil
	}
	s.lineas = append(s.lineas, candidata)
	if err := s.persistir(ctx); err != nil {
		return nil, err
	}
	return &s.lineas[len(s.lineas)-1], nil
}

// Quitar removes the line with the given cart id; absent ids are a no-op.
func (s *Store) Quitar(ctx context.Context, cartID string) error {
	for i := range s.lineas {
		if s.lineas[i].CartID == cartID {
			s.lineas = append(s.lineas[:i], s.lineas[i+1:]...)
			return s.persistir(ctx)
		}
	}
	return nil
}

// ActualizarCantidad sets the line's quantity exactly. cantidad <= 0 removes
// the line; a quantity above defined stock leaves the line unchanged.
func (s *Store) ActualizarCantidad(ctx context.Context, cartID string, cantidad int) error {
	if cantidad <= 0 {
		return s.Quitar(ctx, cartID)
	}
	l := s.Buscar(cartID)
	if l == nil {
		return nil
	}
	if l.Producto.Stock != nil && cantidad > *l.Producto.Stock {
		return nil
	}
	l.Cantidad = cantidad
	return s.persistir(ctx)
}

// ActualizarConfig replaces size, side dish and/or add-ons on an existing
// line; omitted fields stay as they are and the quantity never changes.
// Returns the per-unit price delta produced by a size change (zero when the
// size was untouched).
func (s *Store) ActualizarConfig(ctx context.Context, cartID string, cambio CambioConfig) (decimal.Decimal, error) {
	l := s.Buscar(cartID)
	if l == nil {
		return decimal.Zero, nil
	}

	delta := decimal.Zero
	switch {
	case cambio.QuitarTamano:
		delta = DiffTamano(l.Tamano, nil, l.Producto.Precio)
		l.Tamano = nil
	case cambio.Tamano != nil:
		delta = DiffTamano(l.Tamano, cambio.Tamano, l.Producto.Precio)
		l.Tamano = cambio.Tamano
	}

	if cambio.QuitarGuarnicion {
		l.Guarnicion = nil
	} else if cambio.Guarnicion != nil {
		l.Guarnicion = cambio.Guarnicion
	}

	if cambio.Adicionales != nil {
		l.Adicionales = cambio.Adicionales
	}

	return delta, s.persistir(ctx)
}

// Vaciar empties the cart and removes both persisted keys.
func (s *Store) Vaciar(ctx context.Context) error {
	s.lineas = nil
	return s.persistir(ctx)
}

func (s *Store) persistir(ctx context.Context) error {
	if len(s.lineas) == 0 {
		return s.alm.Del(ctx, claveCart+s.token, claveCartTS+s.token)
	}
	data, err := json.Marshal(s.lineas)
	if err != nil {
		return err
	}
	if err := s.alm.Set(ctx, claveCart+s.token, string(data), s.ventana); err != nil {
		return err
	}
	ts := strconv.FormatInt(s.ahora().UnixMilli(), 10)
	return s.alm.Set(ctx, claveCartTS+s.token, ts, s.ventana)
}
