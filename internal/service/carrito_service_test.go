package service

import (
	"context"
	"testing"
	"time"

	"burgershop/internal/carrito"
	"burgershop/internal/dto"
	"burgershop/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stub ProductoRepository ──────────────────────────────────────────────────

type stubProductoRepo struct {
	productos  map[int64]*model.Producto
	descuentos []int64 // ids whose stock was decremented
}

func newStubProductoRepo(ps ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[int64]*model.Producto)}
	for _, p := range ps {
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == 0 {
		p.ID = int64(len(r.productos) + 1)
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id int64) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id int64) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id int64) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) ReplaceOpciones(_ context.Context, p *model.Producto, ts []model.Tamano, gs []model.Guarnicion, as []model.Adicional) error {
	p.Tamanos, p.Guarniciones, p.Adicionales = ts, gs, as
	return nil
}

func (r *stubProductoRepo) DescontarStock(_ context.Context, id int64, cantidad int) error {
	r.descuentos = append(r.descuentos, id)
	if p, ok := r.productos[id]; ok && p.Stock != nil {
		nuevo := *p.Stock - cantidad
		p.Stock = &nuevo
	}
	return nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func productoDemo() *model.Producto {
	stock := 3
	return &model.Producto{
		ID:     1,
		Nombre: "Hamburguesa",
		Precio: decimal.NewFromInt(10),
		Stock:  &stock,
		Activo: true,
		Tamanos: []model.Tamano{
			{ID: 2, Nombre: "Doble", Precio: decimal.NewFromInt(15), Activo: true},
		},
		Guarniciones: []model.Guarnicion{
			{ID: 4, Nombre: "Papas", Activo: true},
		},
		Adicionales: []model.Adicional{
			{ID: 5, Nombre: "Bacon", Precio: decimal.NewFromInt(3), Maximo: 2, Stock: 50, Activo: true},
			{ID: 6, Nombre: "Cheddar", Precio: decimal.NewFromInt(2), Maximo: 4, Stock: 50, Activo: true},
		},
	}
}

func nuevoCarritoSvc(repo *stubProductoRepo) CarritoService {
	return NewCarritoService(carrito.NewMemoria(nil), repo, time.Hour)
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestAgregarLineaConSetCompletoDeAdicionales(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))
	ctx := context.Background()

	resp, err := svc.Agregar(ctx, "tok", dto.AgregarLineaRequest{
		ProductoID:  1,
		Adicionales: []dto.SeleccionAdicionalRequest{{ID: 5, Cantidad: 1}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lineas, 1)

	// La línea conserva el set completo del producto, con el no elegido en 0.
	require.Len(t, resp.Lineas[0].Adicionales, 2)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(13)))
}

func TestAgregarAdicionalDesconocido(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))

	_, err := svc.Agregar(context.Background(), "tok", dto.AgregarLineaRequest{
		ProductoID:  1,
		Adicionales: []dto.SeleccionAdicionalRequest{{ID: 99, Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrOpcionNoDisponible)
}

func TestAgregarAdicionalSobreElMaximo(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))

	_, err := svc.Agregar(context.Background(), "tok", dto.AgregarLineaRequest{
		ProductoID:  1,
		Adicionales: []dto.SeleccionAdicionalRequest{{ID: 5, Cantidad: 3}},
	})
	assert.ErrorIs(t, err, ErrOpcionNoDisponible)
}

func TestAgregarProductoInactivo(t *testing.T) {
	p := productoDemo()
	p.Activo = false
	svc := nuevoCarritoSvc(newStubProductoRepo(p))

	_, err := svc.Agregar(context.Background(), "tok", dto.AgregarLineaRequest{ProductoID: 1})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

func TestAgregarConsolidaYRespetaStock(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))
	ctx := context.Background()

	var resp dto.CarritoResponse
	var err error
	for i := 0; i < 3; i++ {
		resp, err = svc.Agregar(ctx, "tok", dto.AgregarLineaRequest{ProductoID: 1})
		require.NoError(t, err)
	}
	require.Len(t, resp.Lineas, 1)
	assert.Equal(t, 3, resp.Lineas[0].Cantidad)

	// Cuarta unidad: stock agotado.
	_, err = svc.Agregar(ctx, "tok", dto.AgregarLineaRequest{ProductoID: 1})
	assert.ErrorIs(t, err, ErrSinStock)
}

func TestActualizarCantidadSobreStock(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))
	ctx := context.Background()

	resp, err := svc.Agregar(ctx, "tok", dto.AgregarLineaRequest{ProductoID: 1})
	require.NoError(t, err)
	cartID := resp.Lineas[0].CartID

	_, err = svc.ActualizarCantidad(ctx, "tok", cartID, 10)
	assert.ErrorIs(t, err, ErrSinStock)

	// Dentro del stock funciona.
	resp, err = svc.ActualizarCantidad(ctx, "tok", cartID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Lineas[0].Cantidad)
}

func TestActualizarConfigCambiaTamano(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))
	ctx := context.Background()

	resp, err := svc.Agregar(ctx, "tok", dto.AgregarLineaRequest{ProductoID: 1})
	require.NoError(t, err)
	cartID := resp.Lineas[0].CartID

	tam := int64(2)
	resp, err = svc.ActualizarConfig(ctx, "tok", cartID, dto.ActualizarConfigRequest{TamanoID: &tam})
	require.NoError(t, err)
	require.NotNil(t, resp.Lineas[0].Tamano)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(15)))
}

func TestCarritosPorSesionSonIndependientes(t *testing.T) {
	svc := nuevoCarritoSvc(newStubProductoRepo(productoDemo()))
	ctx := context.Background()

	_, err := svc.Agregar(ctx, "tok-a", dto.AgregarLineaRequest{ProductoID: 1})
	require.NoError(t, err)

	resp, err := svc.Ver(ctx, "tok-b")
	require.NoError(t, err)
	assert.Empty(t, resp.Lineas)
}
