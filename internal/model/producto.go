package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog item orderable from the storefront. Sizes, side
// dishes and add-ons assigned here define the configurable option set a
// cart line snapshots at the moment it is added.
type Producto struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Nombre      string `gorm:"index;not null"`
	Descripcion *string
	CategoriaID int64           `gorm:"index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Descuento is a percentage (0-100); nil means no active discount.
	Descuento *decimal.Decimal `gorm:"type:decimal(5,2)"`
	// Stock nil means unlimited — the cart never clamps quantity for it.
	Stock  *int
	Imagen *string
	Activo bool `gorm:"not null;default:true"`

	Categoria    *Categoria   `gorm:"foreignKey:CategoriaID"`
	Tamanos      []Tamano     `gorm:"many2many:producto_tamanos"`
	Guarniciones []Guarnicion `gorm:"many2many:producto_guarniciones"`
	Adicionales  []Adicional  `gorm:"many2many:producto_adicionales"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Producto) TableName() string { return "productos" }
