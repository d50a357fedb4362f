package service

import (
	"context"
	"errors"

	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

// AdicionalService defines business operations for priced extras.
type AdicionalService interface {
	Crear(ctx context.Context, req dto.CrearAdicionalRequest) (dto.AdicionalResponse, error)
	Listar(ctx context.Context) ([]dto.AdicionalResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarAdicionalRequest) (dto.AdicionalResponse, error)
	Desactivar(ctx context.Context, id int64) error
}

type adicionalService struct {
	repo repository.AdicionalRepository
}

func NewAdicionalService(repo repository.AdicionalRepository) AdicionalService {
	return &adicionalService{repo: repo}
}

func mapAdicional(a model.Adicional) dto.AdicionalResponse {
	return dto.AdicionalResponse{
		ID:     a.ID,
		Nombre: a.Nombre,
		Precio: a.Precio,
		Maximo: a.Maximo,
		Stock:  a.Stock,
		Activo: a.Activo,
	}
}

func (s *adicionalService) Crear(ctx context.Context, req dto.CrearAdicionalRequest) (dto.AdicionalResponse, error) {
	a := &model.Adicional{
		Nombre: req.Nombre,
		Precio: req.Precio,
		Maximo: req.Maximo,
		Stock:  req.Stock,
		Activo: true,
	}
	if err := s.repo.Crear(ctx, a); err != nil {
		return dto.AdicionalResponse{}, err
	}
	return mapAdicional(*a), nil
}

func (s *adicionalService) Listar(ctx context.Context) ([]dto.AdicionalResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AdicionalResponse, 0, len(list))
	for _, a := range list {
		result = append(result, mapAdicional(a))
	}
	return result, nil
}

func (s *adicionalService) Actualizar(ctx context.Context, id int64, req dto.ActualizarAdicionalRequest) (dto.AdicionalResponse, error) {
	a, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdicionalResponse{}, errors.New("adicional no encontrado")
		}
		return dto.AdicionalResponse{}, err
	}

	if req.Nombre != nil {
		a.Nombre = *req.Nombre
	}
	if req.Precio != nil {
		a.Precio = *req.Precio
	}
	if req.Maximo != nil {
		a.Maximo = *req.Maximo
	}
	if req.Stock != nil {
		a.Stock = *req.Stock
	}
	if req.Activo != nil {
		a.Activo = *req.Activo
	}

	if err := s.repo.Actualizar(ctx, a); err != nil {
		return dto.AdicionalResponse{}, err
	}
	return mapAdicional(*a), nil
}

func (s *adicionalService) Desactivar(ctx context.Context, id int64) error {
	_, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("adicional no encontrado")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}
