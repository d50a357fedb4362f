package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"burgershop/internal/carrito"
	"burgershop/internal/dto"
	"burgershop/internal/infra"
	"burgershop/internal/model"
	"burgershop/internal/repository"
	"burgershop/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPedidoNoEncontrado   = errors.New("pedido no encontrado")
	ErrPasarelaNoDisponible = errors.New("la pasarela de pagos no está disponible, intentá más tarde")
)

// PasarelaPagos abstracts the payment gateway; implemented by infra.MPClient
// and stubbed in tests.
type PasarelaPagos interface {
	CrearPreferencia(ctx context.Context, pref infra.MPPreferenceRequest) (*infra.MPPreferenceResponse, error)
}

// PedidoService creates orders out of checkout submissions and drives the
// back-office workflow over them. It also satisfies checkout.CreadorPedidos.
type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (dto.PedidoResponse, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) (dto.PedidoListResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
	ActualizarEstadoPago(ctx context.Context, id uuid.UUID, estado string) error

	// ProcesarWebhook applies a gateway payment notification.
	ProcesarWebhook(ctx context.Context, req dto.MPWebhookRequest) error

	// TicketPDF renders the kitchen ticket and returns the file path.
	TicketPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type pedidoService struct {
	repo          repository.PedidoRepository
	productoRepo  repository.ProductoRepository
	adicionalRepo repository.AdicionalRepository
	pasarela      PasarelaPagos
	cb            *infra.CircuitBreaker
	dispatcher    *worker.Dispatcher
	rdb           *redis.Client
	storagePath   string
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	adicionalRepo repository.AdicionalRepository,
	pasarela PasarelaPagos,
	cb *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
	storagePath string,
) PedidoService {
	return &pedidoService{
		repo:          repo,
		productoRepo:  productoRepo,
		adicionalRepo: adicionalRepo,
		pasarela:      pasarela,
		cb:            cb,
		dispatcher:    dispatcher,
		rdb:           rdb,
		storagePath:   storagePath,
	}
}

// lineaResuelta is one request line priced against the live catalog.
type lineaResuelta struct {
	item  model.PedidoItem
	prod  *model.Producto
	extra []dto.AdicionalPedidoRequest
}

// resolverLinea validates one request line against the catalog and prices it
// with the same arithmetic the cart uses: (base + add-ons) × cantidad, where
// a chosen size supersedes the product base price.
func (s *pedidoService) resolverLinea(ctx context.Context, pl dto.ProductoPedidoRequest) (*lineaResuelta, error) {
	p, err := s.productoRepo.FindByID(ctx, pl.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	if !p.Activo {
		return nil, fmt.Errorf("el producto %s ya no está disponible", p.Nombre)
	}
	if p.Stock != nil && pl.Cantidad > *p.Stock {
		return nil, fmt.Errorf("no hay stock suficiente de %s", p.Nombre)
	}

	linea := carrito.Linea{
		Producto: carrito.ProductoOriginal{ID: p.ID, Nombre: p.Nombre, Precio: p.Precio},
		Cantidad: pl.Cantidad,
	}
	item := model.PedidoItem{
		ProductoID:     p.ID,
		NombreProducto: p.Nombre,
		Cantidad:       pl.Cantidad,
	}

	if pl.IDTam != nil {
		t := buscarTamano(p.Tamanos, *pl.IDTam)
		if t == nil {
			return nil, ErrOpcionNoDisponible
		}
		precio := t.Precio
		linea.Tamano = &carrito.SeleccionTamano{ID: t.ID, Nombre: t.Nombre, PrecioFinal: &precio}
		item.TamanoID = &t.ID
		item.TamanoNombre = &t.Nombre
	}
	if pl.IDGuarnicion != nil {
		g := buscarGuarnicion(p.Guarniciones, *pl.IDGuarnicion)
		if g == nil {
			return nil, ErrOpcionNoDisponible
		}
		item.GuarnicionID = &g.ID
		item.GuarnicionNombre = &g.Nombre
	}

	for _, sel := range pl.Adicionales {
		var encontrado *model.Adicional
		for i := range p.Adicionales {
			if p.Adicionales[i].ID == sel.ID && p.Adicionales[i].Activo {
				encontrado = &p.Adicionales[i]
				break
			}
		}
		if encontrado == nil {
			return nil, ErrOpcionNoDisponible
		}
		if sel.Cantidad > encontrado.Maximo {
			return nil, fmt.Errorf("máximo %d de %s por ítem", encontrado.Maximo, encontrado.Nombre)
		}
		linea.Adicionales = append(linea.Adicionales, carrito.SeleccionAdicional{
			ID:       encontrado.ID,
			Nombre:   encontrado.Nombre,
			Precio:   encontrado.Precio,
			Cantidad: sel.Cantidad,
		})
		item.Adicionales = append(item.Adicionales, model.PedidoItemAdicional{
			AdicionalID:    encontrado.ID,
			Nombre:         encontrado.Nombre,
			Cantidad:       sel.Cantidad,
			PrecioUnitario: encontrado.Precio,
		})
	}

	item.PrecioUnitario = carrito.PrecioBase(linea).Add(carrito.TotalAdicionales(linea))
	item.Subtotal = carrito.TotalLinea(linea)

	return &lineaResuelta{item: item, prod: p, extra: pl.Adicionales}, nil
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoCreadoResponse, error) {
	resueltas := make([]*lineaResuelta, 0, len(req.Productos))
	total := decimal.Zero
	for _, pl := range req.Productos {
		r, err := s.resolverLinea(ctx, pl)
		if err != nil {
			return nil, err
		}
		resueltas = append(resueltas, r)
		total = total.Add(r.item.Subtotal)
	}

	pedido := model.Pedido{
		ID:               uuid.New(),
		ClienteTelefono:  req.Cliente.Telefono,
		ClienteDireccion: req.Cliente.Direccion,
		Descripcion:      req.Descripcion,
		MetodoDePago:     req.MetodoDePago,
		Estado:           model.PedidoAConfirmar,
		EstadoPago:       model.PagoPendiente,
		Total:            total,
	}
	for _, r := range resueltas {
		pedido.Items = append(pedido.Items, r.item)
	}

	// The gateway preference is created before touching the database so a
	// downed gateway never leaves a half-created mercadopago order behind.
	var initPoint *string
	if req.MetodoDePago == model.MetodoMercadoPago {
		items := make([]infra.MPItem, 0, len(pedido.Items))
		for _, it := range pedido.Items {
			items = append(items, infra.MPItem{
				Title:     it.NombreProducto,
				Quantity:  it.Cantidad,
				UnitPrice: it.PrecioUnitario,
			})
		}
		var resp *infra.MPPreferenceResponse
		cbErr := s.cb.Execute(func() error {
			r, err := s.pasarela.CrearPreferencia(ctx, infra.MPPreferenceRequest{
				Items:             items,
				ExternalReference: pedido.ID.String(),
			})
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if cbErr != nil {
			log.Error().Err(cbErr).Msg("pedido: preferencia de pago falló")
			return nil, ErrPasarelaNoDisponible
		}
		initPoint = &resp.InitPoint
		pedido.InitPoint = initPoint
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &pedido); err != nil {
			return err
		}
		for _, r := range resueltas {
			if r.prod.Stock != nil {
				if err := s.productoRepo.DescontarStock(ctx, r.prod.ID, r.item.Cantidad); err != nil {
					return err
				}
			}
			for _, sel := range r.extra {
				if err := s.adicionalRepo.DescontarStock(ctx, sel.ID, sel.Cantidad); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.publicar(ctx, worker.EventoNuevoPedido, &pedido)
	if s.dispatcher != nil {
		payload := worker.NotificacionPayload{PedidoID: pedido.ID.String()}
		if err := s.dispatcher.EnqueueNotificacion(ctx, payload); err != nil {
			log.Error().Err(err).Msg("pedido: no se pudo encolar la notificación")
		}
	}

	log.Info().
		Int64("numero", pedido.Numero).
		Str("metodo", pedido.MetodoDePago).
		Str("total", pedido.Total.StringFixed(2)).
		Msg("pedido creado")

	return &dto.PedidoCreadoResponse{
		ID:        pedido.ID.String(),
		Numero:    pedido.Numero,
		InitPoint: initPoint,
	}, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id uuid.UUID) (dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PedidoResponse{}, ErrPedidoNoEncontrado
		}
		return dto.PedidoResponse{}, err
	}
	return mapPedido(*p), nil
}

func (s *pedidoService) Listar(ctx context.Context, filter dto.PedidoFilter) (dto.PedidoListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.PedidoListResponse{}, err
	}
	resp := dto.PedidoListResponse{
		Data:  make([]dto.PedidoResponse, 0, len(list)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, p := range list {
		resp.Data = append(resp.Data, mapPedido(p))
	}
	return resp, nil
}

func (s *pedidoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		return err
	}
	return s.repo.UpdateEstado(ctx, id, estado)
}

func (s *pedidoService) ActualizarEstadoPago(ctx context.Context, id uuid.UUID, estado string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		return err
	}
	if err := s.repo.UpdateEstadoPago(ctx, id, estado); err != nil {
		return err
	}
	s.publicarPago(ctx, estado, p)
	return nil
}

// ProcesarWebhook applies a gateway notification. Repeated notifications for
// the same terminal state are harmless; the update is idempotent.
func (s *pedidoService) ProcesarWebhook(ctx context.Context, req dto.MPWebhookRequest) error {
	id, err := uuid.Parse(req.PedidoID)
	if err != nil {
		return fmt.Errorf("pedido_id inválido: %w", err)
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPedidoNoEncontrado
		}
		return err
	}
	if p.MetodoDePago != model.MetodoMercadoPago {
		return errors.New("el pedido no se paga por la pasarela")
	}
	if err := s.repo.UpdateEstadoPago(ctx, id, req.Estado); err != nil {
		return err
	}
	s.publicarPago(ctx, req.Estado, p)
	return nil
}

func (s *pedidoService) TicketPDF(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPedidoNoEncontrado
		}
		return "", err
	}
	return infra.GeneratePedidoPDF(p, s.storagePath)
}

func (s *pedidoService) publicar(ctx context.Context, tipo string, p *model.Pedido) {
	if s.rdb == nil {
		return
	}
	worker.PublicarEvento(ctx, s.rdb, worker.Evento{
		Tipo:     tipo,
		PedidoID: p.ID.String(),
		Numero:   p.Numero,
	})
}

func (s *pedidoService) publicarPago(ctx context.Context, estado string, p *model.Pedido) {
	switch estado {
	case model.PagoAprobado:
		s.publicar(ctx, worker.EventoPagoAprobado, p)
	case model.PagoRechazado:
		s.publicar(ctx, worker.EventoPagoRechazado, p)
	case model.PagoExpirado:
		s.publicar(ctx, worker.EventoPagoExpirado, p)
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapPedido(p model.Pedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:           p.ID.String(),
		Numero:       p.Numero,
		Telefono:     p.ClienteTelefono,
		Direccion:    p.ClienteDireccion,
		Descripcion:  p.Descripcion,
		MetodoDePago: p.MetodoDePago,
		Estado:       p.Estado,
		EstadoPago:   p.EstadoPago,
		Total:        p.Total,
		InitPoint:    p.InitPoint,
		Items:        make([]dto.ItemPedidoResponse, 0, len(p.Items)),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range p.Items {
		item := dto.ItemPedidoResponse{
			Producto:       it.NombreProducto,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
			Tamano:         it.TamanoNombre,
			Guarnicion:     it.GuarnicionNombre,
			Adicionales:    make([]dto.AdicionalPedidoResponse, 0, len(it.Adicionales)),
		}
		for _, a := range it.Adicionales {
			item.Adicionales = append(item.Adicionales, dto.AdicionalPedidoResponse{
				ID:             a.AdicionalID,
				Nombre:         a.Nombre,
				Cantidad:       a.Cantidad,
				PrecioUnitario: a.PrecioUnitario,
			})
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
