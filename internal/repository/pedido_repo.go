package repository

import (
	"context"
	"time"

	"burgershop/internal/dto"
	"burgershop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository defines the data access contract for orders.
type PedidoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error
	UpdateInitPoint(ctx context.Context, id uuid.UUID, initPoint string) error

	// ListPagosVencidos returns mercadopago orders whose payment is still
	// pendiente and that were created before the cutoff.
	ListPagosVencidos(ctx context.Context, cutoff time.Time, limit int) ([]model.Pedido, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	if tx == nil {
		tx = r.db.WithContext(ctx)
	}
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Adicionales").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) List(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Pedido{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.EstadoPago != "" {
		q = q.Where("estado_pago = ?", filter.EstadoPago)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Items.Adicionales").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *pedidoRepo) UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("estado_pago", estado).Error
}

func (r *pedidoRepo) UpdateInitPoint(ctx context.Context, id uuid.UUID, initPoint string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("init_point", initPoint).Error
}

func (r *pedidoRepo) ListPagosVencidos(ctx context.Context, cutoff time.Time, limit int) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("metodo_de_pago = ? AND estado_pago = ? AND created_at < ?",
			model.MetodoMercadoPago, model.PagoPendiente, cutoff).
		Limit(limit).Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
