package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"burgershop/internal/carrito"
	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrSinStock           = errors.New("no hay stock suficiente para ese producto")
	ErrOpcionNoDisponible = errors.New("la opción elegida no está disponible para ese producto")
)

// CarritoService resolves catalog ids into cart line configurations and
// drives a per-session cart store. Every call rebuilds the store from the
// session token, loads persisted lines and applies one mutation.
type CarritoService interface {
	Ver(ctx context.Context, token string) (dto.CarritoResponse, error)
	Agregar(ctx context.Context, token string, req dto.AgregarLineaRequest) (dto.CarritoResponse, error)
	ActualizarCantidad(ctx context.Context, token, cartID string, cantidad int) (dto.CarritoResponse, error)
	ActualizarConfig(ctx context.Context, token, cartID string, req dto.ActualizarConfigRequest) (dto.CarritoResponse, error)
	Quitar(ctx context.Context, token, cartID string) (dto.CarritoResponse, error)
	Vaciar(ctx context.Context, token string) error

	// Store rebuilds and loads the session's cart store; the checkout
	// flow mounts its controller on top of it.
	Store(ctx context.Context, token string) (*carrito.Store, error)
}

type carritoService struct {
	alm          carrito.Almacen
	productoRepo repository.ProductoRepository
	ventana      time.Duration
}

func NewCarritoService(alm carrito.Almacen, productoRepo repository.ProductoRepository, ventana time.Duration) CarritoService {
	return &carritoService{alm: alm, productoRepo: productoRepo, ventana: ventana}
}

func (s *carritoService) Store(ctx context.Context, token string) (*carrito.Store, error) {
	store := carrito.NewStore(s.alm, token, s.ventana, nil)
	if err := store.Cargar(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *carritoService) Ver(ctx context.Context, token string) (dto.CarritoResponse, error) {
	store, err := s.Store(ctx, token)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	return dto.NewCarritoResponse(store.Lineas()), nil
}

// armarConfig projects a catalog product plus the request's choices into a
// cart line configuration. The line snapshots the product and carries the
// product's WHOLE add-on set: requested quantities where given, zero for the
// rest, so later edits still see every option.
func (s *carritoService) armarConfig(ctx context.Context, req dto.AgregarLineaRequest) (*carrito.Config, error) {
	p, err := s.productoRepo.FindByID(ctx, req.ProductoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	if !p.Activo {
		return nil, ErrProductoNoEncontrado
	}

	cfg := &carrito.Config{
		Producto: carrito.ProductoOriginal{
			ID:        p.ID,
			Nombre:    p.Nombre,
			Precio:    p.Precio,
			Descuento: p.Descuento,
			Stock:     p.Stock,
			Imagen:    p.Imagen,
		},
		MetodoDePago: req.MetodoDePago,
	}

	if req.TamanoID != nil {
		t := buscarTamano(p.Tamanos, *req.TamanoID)
		if t == nil {
			return nil, ErrOpcionNoDisponible
		}
		precio := t.Precio
		cfg.Tamano = &carrito.SeleccionTamano{ID: t.ID, Nombre: t.Nombre, PrecioFinal: &precio}
	}
	if req.GuarnicionID != nil {
		g := buscarGuarnicion(p.Guarniciones, *req.GuarnicionID)
		if g == nil {
			return nil, ErrOpcionNoDisponible
		}
		cfg.Guarnicion = &carrito.SeleccionGuarnicion{ID: g.ID, Nombre: g.Nombre}
	}

	pedidas := make(map[int64]int, len(req.Adicionales))
	for _, sel := range req.Adicionales {
		pedidas[sel.ID] = sel.Cantidad
	}
	cfg.Adicionales = make([]carrito.SeleccionAdicional, 0, len(p.Adicionales))
	for _, a := range p.Adicionales {
		cantidad := pedidas[a.ID]
		if cantidad > a.Maximo {
			return nil, fmt.Errorf("%w: máximo %d de %s por ítem", ErrOpcionNoDisponible, a.Maximo, a.Nombre)
		}
		cfg.Adicionales = append(cfg.Adicionales, carrito.SeleccionAdicional{
			ID:       a.ID,
			Nombre:   a.Nombre,
			Precio:   a.Precio,
			Cantidad: cantidad,
		})
		delete(pedidas, a.ID)
	}
	if len(pedidas) > 0 {
		return nil, ErrOpcionNoDisponible
	}

	return cfg, nil
}

func (s *carritoService) Agregar(ctx context.Context, token string, req dto.AgregarLineaRequest) (dto.CarritoResponse, error) {
	store, err := s.Store(ctx, token)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	cfg, err := s.armarConfig(ctx, req)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	linea, err := store.Agregar(ctx, *cfg)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	if linea == nil {
		// Stock exhausted: the cart is untouched, surface it to the UI.
		return dto.NewCarritoResponse(store.Lineas()), ErrSinStock
	}
	return dto.NewCarritoResponse(store.Lineas()), nil
}

func (s *carritoService) ActualizarCantidad(ctx context.Context, token, cartID string, cantidad int) (dto.CarritoResponse, error) {
	store, err := s.Store(ctx, token)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	if cantidad > 0 && store.Buscar(cartID) != nil && store.ExcederiaStock(cartID, cantidad-store.Buscar(cartID).Cantidad) {
		return dto.NewCarritoResponse(store.Lineas()), ErrSinStock
	}
	if err := store.ActualizarCantidad(ctx, cartID, cantidad); err != nil {
		return dto.CarritoResponse{}, err
	}
	return dto.NewCarritoResponse(store.Lineas()), nil
}

func (s *carritoService) ActualizarConfig(ctx context.Context, token, cartID string, req dto.ActualizarConfigRequest) (dto.CarritoResponse, error) {
	store, err := s.Store(ctx, token)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	l := store.Buscar(cartID)
	if l == nil {
		return dto.NewCarritoResponse(store.Lineas()), nil
	}

	p, err := s.productoRepo.FindByID(ctx, l.Producto.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CarritoResponse{}, ErrProductoNoEncontrado
		}
		return dto.CarritoResponse{}, err
	}

	cambio := carrito.CambioConfig{
		QuitarTamano:     req.QuitarTamano,
		QuitarGuarnicion: req.QuitarGuarnicion,
	}
	if req.TamanoID != nil {
		t := buscarTamano(p.Tamanos, *req.TamanoID)
		if t == nil {
			return dto.CarritoResponse{}, ErrOpcionNoDisponible
		}
		precio := t.Precio
		cambio.Tamano = &carrito.SeleccionTamano{ID: t.ID, Nombre: t.Nombre, PrecioFinal: &precio}
	}
	if req.GuarnicionID != nil {
		g := buscarGuarnicion(p.Guarniciones, *req.GuarnicionID)
		if g == nil {
			return dto.CarritoResponse{}, ErrOpcionNoDisponible
		}
		cambio.Guarnicion = &carrito.SeleccionGuarnicion{ID: g.ID, Nombre: g.Nombre}
	}
	if req.Adicionales != nil {
		pedidas := make(map[int64]int, len(req.Adicionales))
		for _, sel := range req.Adicionales {
			pedidas[sel.ID] = sel.Cantidad
		}
		cambio.Adicionales = make([]carrito.SeleccionAdicional, 0, len(p.Adicionales))
		for _, a := range p.Adicionales {
			cantidad := pedidas[a.ID]
			if cantidad > a.Maximo {
				return dto.CarritoResponse{}, fmt.Errorf("%w: máximo %d de %s por ítem", ErrOpcionNoDisponible, a.Maximo, a.Nombre)
			}
			cambio.Adicionales = append(cambio.Adicionales, carrito.SeleccionAdicional{
				ID:       a.ID,
				Nombre:   a.Nombre,
				Precio:   a.Precio,
				Cantidad: cantidad,
			})
			delete(pedidas, a.ID)
		}
		if len(pedidas) > 0 {
			return dto.CarritoResponse{}, ErrOpcionNoDisponible
		}
	}

	if _, err := store.ActualizarConfig(ctx, cartID, cambio); err != nil {
		return dto.CarritoResponse{}, err
	}
	return dto.NewCarritoResponse(store.Lineas()), nil
}

func (s *carritoService) Quitar(ctx context.Context, token, cartID string) (dto.CarritoResponse, error) {
	store, err := s.Store(ctx, token)
	if err != nil {
		return dto.CarritoResponse{}, err
	}
	if err := store.Quitar(ctx, cartID); err != nil {
		return dto.CarritoResponse{}, err
	}
	return dto.NewCarritoResponse(store.Lineas()), nil
}

func (s *carritoService) Vaciar(ctx context.Context, token string) error {
	store, err := s.Store(ctx, token)
	if err != nil {
		return err
	}
	return store.Vaciar(ctx)
}

func buscarTamano(ts []model.Tamano, id int64) *model.Tamano {
	for i := range ts {
		if ts[i].ID == id && ts[i].Activo {
			return &ts[i]
		}
	}
	return nil
}

func buscarGuarnicion(gs []model.Guarnicion, id int64) *model.Guarnicion {
	for i := range gs {
		if gs[i].ID == id && gs[i].Activo {
			return &gs[i]
		}
	}
	return nil
}
