package handler

import (
	"net/http"

	"burgershop/internal/apierror"
	"burgershop/internal/dto"
	"burgershop/internal/service"

	"github.com/gin-gonic/gin"
)

type GuarnicionesHandler struct{ svc service.GuarnicionService }

func NewGuarnicionesHandler(svc service.GuarnicionService) *GuarnicionesHandler {
	return &GuarnicionesHandler{svc: svc}
}

// Crear POST /v1/admin/guarniciones
func (h *GuarnicionesHandler) Crear(c *gin.Context) {
	var req dto.CrearGuarnicionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/guarniciones
func (h *GuarnicionesHandler) Listar(c *gin.Context) {
	list, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar guarniciones"))
		return
	}
	c.JSON(http.StatusOK, dto.GuarnicionListResponse{Data: list})
}

// Actualizar PUT /v1/admin/guarniciones/:id
func (h *GuarnicionesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarGuarnicionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Actualizar(c.Request.Context(), id, req)
	if svcErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar DELETE /v1/admin/guarniciones/:id
func (h *GuarnicionesHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := h.svc.Desactivar(c.Request.Context(), id); svcErr != nil {
		c.JSON(http.StatusBadRequest, apierror.New(svcErr.Error()))
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
