package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"burgershop/internal/dto"
	"burgershop/internal/infra"
	"burgershop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stub PedidoRepository ────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
	numero  int64
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.numero++
	p.Numero = r.numero
	p.CreatedAt = time.Now()
	copia := *p
	r.pedidos[p.ID] = &copia
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPedidoRepo) List(_ context.Context, _ dto.PedidoFilter) ([]model.Pedido, int64, error) {
	out := make([]model.Pedido, 0, len(r.pedidos))
	for _, p := range r.pedidos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	if p, ok := r.pedidos[id]; ok {
		p.Estado = estado
	}
	return nil
}

func (r *stubPedidoRepo) UpdateEstadoPago(_ context.Context, id uuid.UUID, estado string) error {
	if p, ok := r.pedidos[id]; ok {
		p.EstadoPago = estado
	}
	return nil
}

func (r *stubPedidoRepo) UpdateInitPoint(_ context.Context, id uuid.UUID, initPoint string) error {
	if p, ok := r.pedidos[id]; ok {
		p.InitPoint = &initPoint
	}
	return nil
}

func (r *stubPedidoRepo) ListPagosVencidos(_ context.Context, cutoff time.Time, limit int) ([]model.Pedido, error) {
	out := make([]model.Pedido, 0)
	for _, p := range r.pedidos {
		if len(out) == limit {
			break
		}
		if p.MetodoDePago == model.MetodoMercadoPago && p.EstadoPago == model.PagoPendiente && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

// ── Stub AdicionalRepository ─────────────────────────────────────────────────

type stubAdicionalRepo struct {
	descuentos map[int64]int
}

func newStubAdicionalRepo() *stubAdicionalRepo {
	return &stubAdicionalRepo{descuentos: make(map[int64]int)}
}

func (r *stubAdicionalRepo) Crear(_ context.Context, _ *model.Adicional) error { return nil }

func (r *stubAdicionalRepo) Listar(_ context.Context) ([]model.Adicional, error) { return nil, nil }

func (r *stubAdicionalRepo) ObtenerPorID(_ context.Context, _ int64) (*model.Adicional, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAdicionalRepo) ObtenerPorIDs(_ context.Context, _ []int64) ([]model.Adicional, error) {
	return nil, nil
}

func (r *stubAdicionalRepo) Actualizar(_ context.Context, _ *model.Adicional) error { return nil }

func (r *stubAdicionalRepo) Desactivar(_ context.Context, _ int64) error { return nil }

func (r *stubAdicionalRepo) DescontarStock(_ context.Context, id int64, cantidad int) error {
	r.descuentos[id] += cantidad
	return nil
}

// ── Stub PasarelaPagos ───────────────────────────────────────────────────────

type stubPasarela struct {
	resp     *infra.MPPreferenceResponse
	err      error
	llamadas int
	ultima   infra.MPPreferenceRequest
}

func (p *stubPasarela) CrearPreferencia(_ context.Context, pref infra.MPPreferenceRequest) (*infra.MPPreferenceResponse, error) {
	p.llamadas++
	p.ultima = pref
	if p.err != nil {
		return nil, p.err
	}
	return p.resp, nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

type entornoPedidos struct {
	svc      PedidoService
	repo     *stubPedidoRepo
	prodRepo *stubProductoRepo
	adicRepo *stubAdicionalRepo
	pasarela *stubPasarela
}

func nuevoEntornoPedidos(pasarela *stubPasarela) *entornoPedidos {
	e := &entornoPedidos{
		repo:     newStubPedidoRepo(),
		prodRepo: newStubProductoRepo(productoDemo()),
		adicRepo: newStubAdicionalRepo(),
		pasarela: pasarela,
	}
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	e.svc = NewPedidoService(e.repo, e.prodRepo, e.adicRepo, e.pasarela, cb, nil, nil, "")
	return e
}

func reqPedido(metodo string) dto.CrearPedidoRequest {
	tam := int64(2)
	return dto.CrearPedidoRequest{
		Cliente:      dto.ClientePedido{Telefono: "+5491155550000", Direccion: "Av. Siempreviva 742"},
		MetodoDePago: metodo,
		Productos: []dto.ProductoPedidoRequest{
			{
				ID:          1,
				Cantidad:    2,
				IDTam:       &tam,
				Adicionales: []dto.AdicionalPedidoRequest{{ID: 5, Cantidad: 1}},
			},
		},
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearPedidoEfectivo(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	resp, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoEfectivo))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Numero)
	assert.Nil(t, resp.InitPoint)
	assert.Zero(t, e.pasarela.llamadas)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	guardado, err := e.repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	// (tamaño 15 + bacon 3) × 2 = 36; el tamaño reemplaza al precio base.
	assert.True(t, guardado.Total.Equal(decimal.NewFromInt(36)))
	assert.Equal(t, model.PedidoAConfirmar, guardado.Estado)
	assert.Equal(t, model.PagoPendiente, guardado.EstadoPago)

	// Descuenta stock del producto y del adicional elegido.
	assert.Contains(t, e.prodRepo.descuentos, int64(1))
	assert.Equal(t, 1, e.adicRepo.descuentos[5])
}

func TestCrearPedidoMercadoPago(t *testing.T) {
	pasarela := &stubPasarela{resp: &infra.MPPreferenceResponse{InitPoint: "https://mp.example/init/abc"}}
	e := nuevoEntornoPedidos(pasarela)

	resp, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoMercadoPago))
	require.NoError(t, err)
	require.NotNil(t, resp.InitPoint)
	assert.Equal(t, "https://mp.example/init/abc", *resp.InitPoint)

	// La preferencia referencia al pedido que todavía no existe en la base.
	assert.Equal(t, 1, pasarela.llamadas)
	assert.Equal(t, resp.ID, pasarela.ultima.ExternalReference)

	guardado, err := e.repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, guardado.InitPoint)
	assert.Equal(t, "https://mp.example/init/abc", *guardado.InitPoint)
}

func TestCrearPedidoPasarelaCaida(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{err: errors.New("gateway timeout")})

	_, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoMercadoPago))
	assert.ErrorIs(t, err, ErrPasarelaNoDisponible)

	// Nada quedó a medio crear.
	assert.Empty(t, e.repo.pedidos)
	assert.Empty(t, e.prodRepo.descuentos)
	assert.Empty(t, e.adicRepo.descuentos)
}

func TestCrearPedidoSinStock(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	req := reqPedido(model.MetodoEfectivo)
	req.Productos[0].Cantidad = 10 // stock del demo: 3

	_, err := e.svc.Crear(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, e.repo.pedidos)
}

func TestCrearPedidoAdicionalInvalido(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	req := reqPedido(model.MetodoEfectivo)
	req.Productos[0].Adicionales = []dto.AdicionalPedidoRequest{{ID: 99, Cantidad: 1}}

	_, err := e.svc.Crear(context.Background(), req)
	assert.ErrorIs(t, err, ErrOpcionNoDisponible)
}

func TestProcesarWebhookApruebaPago(t *testing.T) {
	pasarela := &stubPasarela{resp: &infra.MPPreferenceResponse{InitPoint: "https://mp.example/init/abc"}}
	e := nuevoEntornoPedidos(pasarela)

	resp, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoMercadoPago))
	require.NoError(t, err)

	err = e.svc.ProcesarWebhook(context.Background(), dto.MPWebhookRequest{
		PedidoID: resp.ID,
		Estado:   model.PagoAprobado,
	})
	require.NoError(t, err)

	guardado, err := e.repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PagoAprobado, guardado.EstadoPago)
}

func TestProcesarWebhookRechazaPedidoSinPasarela(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	resp, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoEfectivo))
	require.NoError(t, err)

	err = e.svc.ProcesarWebhook(context.Background(), dto.MPWebhookRequest{
		PedidoID: resp.ID,
		Estado:   model.PagoAprobado,
	})
	require.Error(t, err)

	guardado, err := e.repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PagoPendiente, guardado.EstadoPago)
}

func TestProcesarWebhookPedidoInexistente(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	err := e.svc.ProcesarWebhook(context.Background(), dto.MPWebhookRequest{
		PedidoID: uuid.NewString(),
		Estado:   model.PagoAprobado,
	})
	assert.ErrorIs(t, err, ErrPedidoNoEncontrado)
}

func TestActualizarEstadoInexistente(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	err := e.svc.ActualizarEstado(context.Background(), uuid.New(), model.PedidoEnPreparacion)
	assert.ErrorIs(t, err, ErrPedidoNoEncontrado)
}

func TestObtenerMapeaItems(t *testing.T) {
	e := nuevoEntornoPedidos(&stubPasarela{})

	creado, err := e.svc.Crear(context.Background(), reqPedido(model.MetodoEfectivo))
	require.NoError(t, err)

	resp, err := e.svc.Obtener(context.Background(), uuid.MustParse(creado.ID))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Hamburguesa", resp.Items[0].Producto)
	require.NotNil(t, resp.Items[0].Tamano)
	assert.Equal(t, "Doble", *resp.Items[0].Tamano)
	require.Len(t, resp.Items[0].Adicionales, 1)
	assert.Equal(t, "Bacon", resp.Items[0].Adicionales[0].Nombre)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(36)))
}
