package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tamano is an optional product size variant. Precio is the final price of a
// product sold in this size: when a cart line carries a size, this price
// supersedes the product's base price.
type Tamano struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Nombre    string          `gorm:"uniqueIndex;not null"`
	Precio    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tamano) TableName() string { return "tamanos" }
