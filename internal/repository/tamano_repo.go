package repository

import (
	"context"

	"burgershop/internal/model"

	"gorm.io/gorm"
)

// TamanoRepository defines CRUD operations for product sizes.
type TamanoRepository interface {
	Crear(ctx context.Context, t *model.Tamano) error
	Listar(ctx context.Context) ([]model.Tamano, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Tamano, error)
	ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Tamano, error)
	Actualizar(ctx context.Context, t *model.Tamano) error
	Desactivar(ctx context.Context, id int64) error
}

type tamanoRepository struct{ db *gorm.DB }

func NewTamanoRepository(db *gorm.DB) TamanoRepository { return &tamanoRepository{db: db} }

func (r *tamanoRepository) Crear(ctx context.Context, t *model.Tamano) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tamanoRepository) Listar(ctx context.Context) ([]model.Tamano, error) {
	var list []model.Tamano
	err := r.db.WithContext(ctx).Order("precio asc").Find(&list).Error
	return list, err
}

func (r *tamanoRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Tamano, error) {
	var t model.Tamano
	err := r.db.WithContext(ctx).First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tamanoRepository) ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Tamano, error) {
	var list []model.Tamano
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *tamanoRepository) Actualizar(ctx context.Context, t *model.Tamano) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tamanoRepository) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Tamano{}).Where("id = ?", id).Update("activo", false).Error
}
