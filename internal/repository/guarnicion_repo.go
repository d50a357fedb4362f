package repository

import (
	"context"

	"burgershop/internal/model"

	"gorm.io/gorm"
)

// GuarnicionRepository defines CRUD operations for side dishes.
type GuarnicionRepository interface {
	Crear(ctx context.Context, g *model.Guarnicion) error
	Listar(ctx context.Context) ([]model.Guarnicion, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Guarnicion, error)
	ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Guarnicion, error)
	Actualizar(ctx context.Context, g *model.Guarnicion) error
	Desactivar(ctx context.Context, id int64) error
}

type guarnicionRepository struct{ db *gorm.DB }

func NewGuarnicionRepository(db *gorm.DB) GuarnicionRepository {
	return &guarnicionRepository{db: db}
}

func (r *guarnicionRepository) Crear(ctx context.Context, g *model.Guarnicion) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *guarnicionRepository) Listar(ctx context.Context) ([]model.Guarnicion, error) {
	var list []model.Guarnicion
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *guarnicionRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Guarnicion, error) {
	var g model.Guarnicion
	err := r.db.WithContext(ctx).First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guarnicionRepository) ObtenerPorIDs(ctx context.Context, ids []int64) ([]model.Guarnicion, error) {
	var list []model.Guarnicion
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *guarnicionRepository) Actualizar(ctx context.Context, g *model.Guarnicion) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *guarnicionRepository) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Guarnicion{}).Where("id = ?", id).Update("activo", false).Error
}
