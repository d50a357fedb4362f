package repository

import (
	"context"

	"burgershop/internal/model"

	"gorm.io/gorm"
)

// AdicionalRepository defines CRUD + stock operations for add-ons.
type AdicionalRepository interface {
	Crear(ctx context.Context, a *model.Adicional) error
	Listar(ctx context.Context) ([]model.Adicional, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Adicional, error)
	ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Adicional, error)
	Actualizar(ctx context.Context, a *model.Adicional) error
	Desactivar(ctx context.Context, id int64) error
	DescontarStock(ctx context.Context, id int64, cantidad int) error
}

type adicionalRepository struct{ db *gorm.DB }

func NewAdicionalRepository(db *gorm.DB) AdicionalRepository {
	return &adicionalRepository{db: db}
}

func (r *adicionalRepository) Crear(ctx context.Context, a *model.Adicional) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *adicionalRepository) Listar(ctx context.Context) ([]model.Adicional, error) {
	var list []model.Adicional
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *adicionalRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Adicional, error) {
	var a model.Adicional
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adicionalRepository) ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Adicional, error) {
	var list []model.Adicional
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *adicionalRepository) Actualizar(ctx context.Context, a *model.Adicional) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *adicionalRepository) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Adicional{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *adicionalRepository) DescontarStock(ctx context.Context, id int64, cantidad int) error {
	return r.db.WithContext(ctx).Model(&model.Adicional{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}
