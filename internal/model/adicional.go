package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adicional is a repeatable priced extra (bacon, cheese, …) attachable to a
// cart line, bounded by Maximo units per line and available Stock.
type Adicional struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	Nombre string          `gorm:"uniqueIndex;not null"`
	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Maximo is the maximum units of this add-on allowed on a single line.
	Maximo    int  `gorm:"not null;default:1"`
	Stock     int  `gorm:"not null;default:0"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Adicional) TableName() string { return "adicionales" }
