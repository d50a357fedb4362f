package service

import (
	"context"
	"errors"

	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

var ErrProductoNoEncontrado = errors.New("producto no encontrado")

// ProductoService defines business operations for catalog products,
// including the assignment of sizes, sides and add-ons.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (dto.ProductoResponse, error)
	Obtener(ctx context.Context, id int64) (dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id int64) error
	Reactivar(ctx context.Context, id int64) error
}

type productoService struct {
	repo           repository.ProductoRepository
	categoriaRepo  repository.CategoriaRepository
	tamanoRepo     repository.TamanoRepository
	guarnicionRepo repository.GuarnicionRepository
	adicionalRepo  repository.AdicionalRepository
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	tamanoRepo repository.TamanoRepository,
	guarnicionRepo repository.GuarnicionRepository,
	adicionalRepo repository.AdicionalRepository,
) ProductoService {
	return &productoService{
		repo:           repo,
		categoriaRepo:  categoriaRepo,
		tamanoRepo:     tamanoRepo,
		guarnicionRepo: guarnicionRepo,
		adicionalRepo:  adicionalRepo,
	}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		CategoriaID:  p.CategoriaID,
		Precio:       p.Precio,
		Descuento:    p.Descuento,
		Stock:        p.Stock,
		Imagen:       p.Imagen,
		Activo:       p.Activo,
		Tamanos:      make([]dto.TamanoResponse, 0, len(p.Tamanos)),
		Guarniciones: make([]dto.GuarnicionResponse, 0, len(p.Guarniciones)),
		Adicionales:  make([]dto.AdicionalResponse, 0, len(p.Adicionales)),
	}
	for _, t := range p.Tamanos {
		resp.Tamanos = append(resp.Tamanos, mapTamano(t))
	}
	for _, g := range p.Guarniciones {
		resp.Guarniciones = append(resp.Guarniciones, mapGuarnicion(g))
	}
	for _, a := range p.Adicionales {
		resp.Adicionales = append(resp.Adicionales, mapAdicional(a))
	}
	return resp
}

// resolverOpciones loads the referenced option entities, failing when any
// id does not exist. Option sets are replaced whole, never merged.
func (s *productoService) resolverOpciones(ctx context.Context, tamanoIDs, guarnicionIDs, adicionalIDs []int64) ([]model.Tamano, []model.Guarnicion, []model.Adicional, error) {
	tamanos, err := s.tamanoRepo.ObtenerPorIDs(ctx, tamanoIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(tamanos) != len(tamanoIDs) {
		return nil, nil, nil, errors.New("algún tamaño indicado no existe")
	}
	guarniciones, err := s.guarnicionRepo.ObtenerPorIDs(ctx, guarnicionIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(guarniciones) != len(guarnicionIDs) {
		return nil, nil, nil, errors.New("alguna guarnición indicada no existe")
	}
	adicionales, err := s.adicionalRepo.ObtenerPorIDs(ctx, adicionalIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(adicionales) != len(adicionalIDs) {
		return nil, nil, nil, errors.New("algún adicional indicado no existe")
	}
	return tamanos, guarniciones, adicionales, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (dto.ProductoResponse, error) {
	if _, err := s.categoriaRepo.ObtenerPorID(ctx, req.CategoriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductoResponse{}, errors.New("categoría no encontrada")
		}
		return dto.ProductoResponse{}, err
	}

	tamanos, guarniciones, adicionales, err := s.resolverOpciones(ctx, req.TamanoIDs, req.GuarnicionIDs, req.AdicionalIDs)
	if err != nil {
		return dto.ProductoResponse{}, err
	}

	p := &model.Producto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		CategoriaID:  req.CategoriaID,
		Precio:       req.Precio,
		Descuento:    req.Descuento,
		Stock:        req.Stock,
		Imagen:       req.Imagen,
		Activo:       true,
		Tamanos:      tamanos,
		Guarniciones: guarniciones,
		Adicionales:  adicionales,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*p), nil
}

func (s *productoService) Obtener(ctx context.Context, id int64) (dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductoResponse{}, ErrProductoNoEncontrado
		}
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (dto.ProductoListResponse, error) {
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ProductoListResponse{}, err
	}
	resp := dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(list)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, p := range list {
		resp.Data = append(resp.Data, mapProducto(p))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProductoResponse{}, ErrProductoNoEncontrado
		}
		return dto.ProductoResponse{}, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		if _, err := s.categoriaRepo.ObtenerPorID(ctx, *req.CategoriaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.ProductoResponse{}, errors.New("categoría no encontrada")
			}
			return dto.ProductoResponse{}, err
		}
		p.CategoriaID = *req.CategoriaID
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Descuento != nil {
		p.Descuento = req.Descuento
	}
	if req.Stock != nil {
		p.Stock = req.Stock
	}
	if req.Imagen != nil {
		p.Imagen = req.Imagen
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return dto.ProductoResponse{}, err
	}

	// nil slice means "leave the option set untouched"; an empty slice
	// clears the assignment.
	if req.TamanoIDs != nil || req.GuarnicionIDs != nil || req.AdicionalIDs != nil {
		tIDs := req.TamanoIDs
		if tIDs == nil {
			tIDs = idsDeTamanos(p.Tamanos)
		}
		gIDs := req.GuarnicionIDs
		if gIDs == nil {
			gIDs = idsDeGuarniciones(p.Guarniciones)
		}
		aIDs := req.AdicionalIDs
		if aIDs == nil {
			aIDs = idsDeAdicionales(p.Adicionales)
		}
		tamanos, guarniciones, adicionales, err := s.resolverOpciones(ctx, tIDs, gIDs, aIDs)
		if err != nil {
			return dto.ProductoResponse{}, err
		}
		if err := s.repo.ReplaceOpciones(ctx, p, tamanos, guarniciones, adicionales); err != nil {
			return dto.ProductoResponse{}, err
		}
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ProductoResponse{}, err
	}
	return mapProducto(*actualizado), nil
}

func (s *productoService) Desactivar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

func idsDeTamanos(ts []model.Tamano) []int64 {
	ids := make([]int64, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

func idsDeGuarniciones(gs []model.Guarnicion) []int64 {
	ids := make([]int64, 0, len(gs))
	for _, g := range gs {
		ids = append(ids, g.ID)
	}
	return ids
}

func idsDeAdicionales(as []model.Adicional) []int64 {
	ids := make([]int64, 0, len(as))
	for _, a := range as {
		ids = append(ids, a.ID)
	}
	return ids
}
