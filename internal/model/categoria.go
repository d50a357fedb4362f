package model

import "time"

// Categoria groups products in the storefront menu.
type Categoria struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Nombre      string `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Imagen      *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
