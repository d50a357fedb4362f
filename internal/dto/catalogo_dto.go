package dto

import "github.com/shopspring/decimal"

// Catalog/config reads all return the {"data": [...]} envelope the
// storefront consumes.

// ─── Categoria ───────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
	Imagen      *string `json:"imagen"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Descripcion *string `json:"descripcion"`
	Imagen      *string `json:"imagen"`
	Activo      *bool   `json:"activo"`
}

type CategoriaResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Imagen      *string `json:"imagen"`
	Activo      bool    `json:"activo"`
}

type CategoriaListResponse struct {
	Data []CategoriaResponse `json:"data"`
}

// ─── Tamano ──────────────────────────────────────────────────────────────────

type CrearTamanoRequest struct {
	Nombre string          `json:"nombre" validate:"required,min=1,max=40"`
	Precio decimal.Decimal `json:"precio" validate:"required,gt=0"`
}

type ActualizarTamanoRequest struct {
	Nombre *string          `json:"nombre" validate:"omitempty,min=1,max=40"`
	Precio *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
	Activo *bool            `json:"activo"`
}

type TamanoResponse struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Activo bool            `json:"activo"`
}

type TamanoListResponse struct {
	Data []TamanoResponse `json:"data"`
}

// ─── Guarnicion ──────────────────────────────────────────────────────────────

type CrearGuarnicionRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=80"`
}

type ActualizarGuarnicionRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2,max=80"`
	Activo *bool   `json:"activo"`
}

type GuarnicionResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type GuarnicionListResponse struct {
	Data []GuarnicionResponse `json:"data"`
}

// ─── Adicional ───────────────────────────────────────────────────────────────

type CrearAdicionalRequest struct {
	Nombre string          `json:"nombre" validate:"required,min=2,max=80"`
	Precio decimal.Decimal `json:"precio" validate:"required,gt=0"`
	Maximo int             `json:"maximo" validate:"required,gt=0"`
	Stock  int             `json:"stock"  validate:"min=0"`
}

type ActualizarAdicionalRequest struct {
	Nombre *string          `json:"nombre" validate:"omitempty,min=2,max=80"`
	Precio *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
	Maximo *int             `json:"maximo" validate:"omitempty,gt=0"`
	Stock  *int             `json:"stock"  validate:"omitempty,min=0"`
	Activo *bool            `json:"activo"`
}

type AdicionalResponse struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Maximo int             `json:"maximo"`
	Stock  int             `json:"stock"`
	Activo bool            `json:"activo"`
}

type AdicionalListResponse struct {
	Data []AdicionalResponse `json:"data"`
}

// ─── Banco ───────────────────────────────────────────────────────────────────

type CrearBancoRequest struct {
	Nombre  string  `json:"nombre"  validate:"required,min=2,max=80"`
	Titular string  `json:"titular" validate:"required,min=2,max=120"`
	CBU     string  `json:"cbu"     validate:"required,len=22,numeric"`
	Alias   *string `json:"alias"`
}

type ActualizarBancoRequest struct {
	Nombre  *string `json:"nombre"  validate:"omitempty,min=2,max=80"`
	Titular *string `json:"titular" validate:"omitempty,min=2,max=120"`
	CBU     *string `json:"cbu"     validate:"omitempty,len=22,numeric"`
	Alias   *string `json:"alias"`
	Activo  *bool   `json:"activo"`
}

type BancoResponse struct {
	ID      int64   `json:"id"`
	Nombre  string  `json:"nombre"`
	Titular string  `json:"titular"`
	CBU     string  `json:"cbu"`
	Alias   *string `json:"alias"`
	Activo  bool    `json:"activo"`
}

type BancoListResponse struct {
	Data []BancoResponse `json:"data"`
}
