package service

import (
	"context"
	"errors"

	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

// TamanoService defines business operations for product size variants.
type TamanoService interface {
	Crear(ctx context.Context, req dto.CrearTamanoRequest) (dto.TamanoResponse, error)
	Listar(ctx context.Context) ([]dto.TamanoResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarTamanoRequest) (dto.TamanoResponse, error)
	Desactivar(ctx context.Context, id int64) error
}

type tamanoService struct {
	repo repository.TamanoRepository
}

func NewTamanoService(repo repository.TamanoRepository) TamanoService {
	return &tamanoService{repo: repo}
}

func mapTamano(t model.Tamano) dto.TamanoResponse {
	return dto.TamanoResponse{
		ID:     t.ID,
		Nombre: t.Nombre,
		Precio: t.Precio,
		Activo: t.Activo,
	}
}

func (s *tamanoService) Crear(ctx context.Context, req dto.CrearTamanoRequest) (dto.TamanoResponse, error) {
	t := &model.Tamano{
		Nombre: req.Nombre,
		Precio: req.Precio,
		Activo: true,
	}
	if err := s.repo.Crear(ctx, t); err != nil {
		return dto.TamanoResponse{}, err
	}
	return mapTamano(*t), nil
}

func (s *tamanoService) Listar(ctx context.Context) ([]dto.TamanoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TamanoResponse, 0, len(list))
	for _, t := range list {
		result = append(result, mapTamano(t))
	}
	return result, nil
}

func (s *tamanoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarTamanoRequest) (dto.TamanoResponse, error) {
	t, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TamanoResponse{}, errors.New("tamaño no encontrado")
		}
		return dto.TamanoResponse{}, err
	}

	if req.Nombre != nil {
		t.Nombre = *req.Nombre
	}
	if req.Precio != nil {
		t.Precio = *req.Precio
	}
	if req.Activo != nil {
		t.Activo = *req.Activo
	}

	if err := s.repo.Actualizar(ctx, t); err != nil {
		return dto.TamanoResponse{}, err
	}
	return mapTamano(*t), nil
}

func (s *tamanoService) Desactivar(ctx context.Context, id int64) error {
	_, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("tamaño no encontrado")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}
