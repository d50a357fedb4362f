package service

import (
	"context"
	"errors"

	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

// BancoService manages the bank accounts shown for transfer payments.
type BancoService interface {
	Crear(ctx context.Context, req dto.CrearBancoRequest) (dto.BancoResponse, error)
	Listar(ctx context.Context) ([]dto.BancoResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarBancoRequest) (dto.BancoResponse, error)
	Desactivar(ctx context.Context, id int64) error
}

type bancoService struct {
	repo repository.BancoRepository
}

func NewBancoService(repo repository.BancoRepository) BancoService {
	return &bancoService{repo: repo}
}

func mapBanco(b model.Banco) dto.BancoResponse {
	return dto.BancoResponse{
		ID:      b.ID,
		Nombre:  b.Nombre,
		Titular: b.Titular,
		CBU:     b.CBU,
		Alias:   b.Alias,
		Activo:  b.Activo,
	}
}

func (s *bancoService) Crear(ctx context.Context, req dto.CrearBancoRequest) (dto.BancoResponse, error) {
	b := &model.Banco{
		Nombre:  req.Nombre,
		Titular: req.Titular,
		CBU:     req.CBU,
		Alias:   req.Alias,
		Activo:  true,
	}
	if err := s.repo.Crear(ctx, b); err != nil {
		return dto.BancoResponse{}, err
	}
	return mapBanco(*b), nil
}

func (s *bancoService) Listar(ctx context.Context) ([]dto.BancoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BancoResponse, 0, len(list))
	for _, b := range list {
		result = append(result, mapBanco(b))
	}
	return result, nil
}

func (s *bancoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarBancoRequest) (dto.BancoResponse, error) {
	b, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BancoResponse{}, errors.New("banco no encontrado")
		}
		return dto.BancoResponse{}, err
	}

	if req.Nombre != nil {
		b.Nombre = *req.Nombre
	}
	if req.Titular != nil {
		b.Titular = *req.Titular
	}
	if req.CBU != nil {
		b.CBU = *req.CBU
	}
	if req.Alias != nil {
		b.Alias = req.Alias
	}
	if req.Activo != nil {
		b.Activo = *req.Activo
	}

	if err := s.repo.Actualizar(ctx, b); err != nil {
		return dto.BancoResponse{}, err
	}
	return mapBanco(*b), nil
}

func (s *bancoService) Desactivar(ctx context.Context, id int64) error {
	_, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("banco no encontrado")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}
