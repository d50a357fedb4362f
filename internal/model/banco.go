package model

import "time"

// Banco holds a bank account shown to customers who pay by transfer.
type Banco struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Nombre    string `gorm:"not null"`
	Titular   string `gorm:"not null"`
	CBU       string `gorm:"uniqueIndex;not null;column:cbu"`
	Alias     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Banco) TableName() string { return "bancos" }
