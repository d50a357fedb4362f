package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre        string           `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion   *string          `json:"descripcion"`
	CategoriaID   int64            `json:"categoria_id" validate:"required,gt=0"`
	Precio        decimal.Decimal  `json:"precio"       validate:"required,gt=0"`
	Descuento     *decimal.Decimal `json:"descuento"    validate:"omitempty,min=0,max=100"`
	Stock         *int             `json:"stock"        validate:"omitempty,min=0"`
	Imagen        *string          `json:"imagen"`
	TamanoIDs     []int64          `json:"tamano_ids"`
	GuarnicionIDs []int64          `json:"guarnicion_ids"`
	AdicionalIDs  []int64          `json:"adicional_ids"`
}

type ActualizarProductoRequest struct {
	Nombre        *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion   *string          `json:"descripcion"`
	CategoriaID   *int64           `json:"categoria_id" validate:"omitempty,gt=0"`
	Precio        *decimal.Decimal `json:"precio"       validate:"omitempty,gt=0"`
	Descuento     *decimal.Decimal `json:"descuento"    validate:"omitempty,min=0,max=100"`
	Stock         *int             `json:"stock"        validate:"omitempty,min=0"`
	Imagen        *string          `json:"imagen"`
	TamanoIDs     []int64          `json:"tamano_ids"`
	GuarnicionIDs []int64          `json:"guarnicion_ids"`
	AdicionalIDs  []int64          `json:"adicional_ids"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID int64  `form:"categoria_id"`
	Activo      string `form:"activo"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           int64                `json:"id"`
	Nombre       string               `json:"nombre"`
	Descripcion  *string              `json:"descripcion"`
	CategoriaID  int64                `json:"categoria_id"`
	Precio       decimal.Decimal      `json:"precio"`
	Descuento    *decimal.Decimal     `json:"descuento"`
	Stock        *int                 `json:"stock"`
	Imagen       *string              `json:"imagen"`
	Activo       bool                 `json:"activo"`
	Tamanos      []TamanoResponse     `json:"tamanos"`
	Guarniciones []GuarnicionResponse `json:"guarniciones"`
	Adicionales  []AdicionalResponse  `json:"adicionales"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
