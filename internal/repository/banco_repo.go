package repository

import (
	"context"

	"burgershop/internal/model"

	"gorm.io/gorm"
)

// BancoRepository defines CRUD operations for bank accounts.
type BancoRepository interface {
	Crear(ctx context.Context, b *model.Banco) error
	Listar(ctx context.Context) ([]model.Banco, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Banco, error)
	Actualizar(ctx context.Context, b *model.Banco) error
	Desactivar(ctx context.Context, id int64) error
}

type bancoRepository struct{ db *gorm.DB }

func NewBancoRepository(db *gorm.DB) BancoRepository { return &bancoRepository{db: db} }

func (r *bancoRepository) Crear(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bancoRepository) Listar(ctx context.Context) ([]model.Banco, error) {
	var list []model.Banco
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *bancoRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Banco, error) {
	var b model.Banco
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bancoRepository) Actualizar(ctx context.Context, b *model.Banco) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bancoRepository) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Banco{}).Where("id = ?", id).Update("activo", false).Error
}
