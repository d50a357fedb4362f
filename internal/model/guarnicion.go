package model

import "time"

// Guarnicion is an optional single-choice accompaniment (fries, salad, …).
// It carries no price of its own; it only alters the order composition.
type Guarnicion struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Guarnicion) TableName() string { return "guarniciones" }
