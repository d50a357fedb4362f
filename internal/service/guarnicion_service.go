package service

import (
	"context"
	"errors"

	"burgershop/internal/dto"
	"burgershop/internal/model"
	"burgershop/internal/repository"

	"gorm.io/gorm"
)

// GuarnicionService defines business operations for accompaniments.
type GuarnicionService interface {
	Crear(ctx context.Context, req dto.CrearGuarnicionRequest) (dto.GuarnicionResponse, error)
	Listar(ctx context.Context) ([]dto.GuarnicionResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarGuarnicionRequest) (dto.GuarnicionResponse, error)
	Desactivar(ctx context.Context, id int64) error
}

type guarnicionService struct {
	repo repository.GuarnicionRepository
}

func NewGuarnicionService(repo repository.GuarnicionRepository) GuarnicionService {
	return &guarnicionService{repo: repo}
}

func mapGuarnicion(g model.Guarnicion) dto.GuarnicionResponse {
	return dto.GuarnicionResponse{
		ID:     g.ID,
		Nombre: g.Nombre,
		Activo: g.Activo,
	}
}

func (s *guarnicionService) Crear(ctx context.Context, req dto.CrearGuarnicionRequest) (dto.GuarnicionResponse, error) {
	g := &model.Guarnicion{
		Nombre: req.Nombre,
		Activo: true,
	}
	if err := s.repo.Crear(ctx, g); err != nil {
		return dto.GuarnicionResponse{}, err
	}
	return mapGuarnicion(*g), nil
}

func (s *guarnicionService) Listar(ctx context.Context) ([]dto.GuarnicionResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.GuarnicionResponse, 0, len(list))
	for _, g := range list {
		result = append(result, mapGuarnicion(g))
	}
	return result, nil
}

func (s *guarnicionService) Actualizar(ctx context.Context, id int64, req dto.ActualizarGuarnicionRequest) (dto.GuarnicionResponse, error) {
	g, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GuarnicionResponse{}, errors.New("guarnición no encontrada")
		}
		return dto.GuarnicionResponse{}, err
	}

	if req.Nombre != nil {
		g.Nombre = *req.Nombre
	}
	if req.Activo != nil {
		g.Activo = *req.Activo
	}

	if err := s.repo.Actualizar(ctx, g); err != nil {
		return dto.GuarnicionResponse{}, err
	}
	return mapGuarnicion(*g), nil
}

func (s *guarnicionService) Desactivar(ctx context.Context, id int64) error {
	_, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("guarnición no encontrada")
		}
		return err
	}
	return s.repo.Desactivar(ctx, id)
}
