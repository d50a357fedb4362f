package repository

import (
	"context"

	"burgershop/internal/dto"
	"burgershop/internal/model"

	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id int64) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id int64) error
	Reactivar(ctx context.Context, id int64) error

	// ReplaceOpciones rewrites the size/side/add-on assignments of a product.
	ReplaceOpciones(ctx context.Context, p *model.Producto, tamanos []model.Tamano, guarniciones []model.Guarnicion, adicionales []model.Adicional) error

	// DescontarStock decrements stock_actual for products with defined stock.
	DescontarStock(ctx context.Context, id int64, cantidad int) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Tamanos").Preload("Guarniciones").Preload("Adicionales").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.CategoriaID != 0 {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Tamanos").Preload("Guarniciones").Preload("Adicionales").
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) ReplaceOpciones(ctx context.Context, p *model.Producto, tamanos []model.Tamano, guarniciones []model.Guarnicion, adicionales []model.Adicional) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Model(p).Association("Tamanos").Replace(tamanos); err != nil {
		return err
	}
	if err := tx.Model(p).Association("Guarniciones").Replace(guarniciones); err != nil {
		return err
	}
	return tx.Model(p).Association("Adicionales").Replace(adicionales)
}

func (r *productoRepo) DescontarStock(ctx context.Context, id int64, cantidad int) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("stock - ?", cantidad)).Error
}
