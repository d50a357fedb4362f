package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido estados (workflow driven from the back-office):
//
//	a_confirmar → en_preparacion → en_camino → entregado
//	any non-final estado → cancelado
//
// EstadoPago (driven by the payment gateway webhook / expiry cron):
//
//	pendiente → aprobado | rechazado | expirado
const (
	PedidoAConfirmar    = "a_confirmar"
	PedidoEnPreparacion = "en_preparacion"
	PedidoEnCamino      = "en_camino"
	PedidoEntregado     = "entregado"
	PedidoCancelado     = "cancelado"

	PagoPendiente = "pendiente"
	PagoAprobado  = "aprobado"
	PagoRechazado = "rechazado"
	PagoExpirado  = "expirado"
)

// Metodos de pago aceptados en el checkout.
const (
	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
	MetodoMercadoPago   = "mercadopago"
)

// Pedido is a confirmed customer order. Item rows snapshot names and prices
// at purchase time so later catalog edits never rewrite order history.
type Pedido struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero int64     `gorm:"uniqueIndex;autoIncrement;not null"`

	ClienteTelefono  string `gorm:"not null"`
	ClienteDireccion string `gorm:"not null"`
	Descripcion      *string

	MetodoDePago string          `gorm:"type:varchar(20);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'a_confirmar';index"`
	EstadoPago   string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// InitPoint is the gateway redirect URL; only set for mercadopago orders.
	InitPoint *string

	Items []PedidoItem `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one configured line of a Pedido.
type PedidoItem struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	PedidoID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProductoID     int64           `gorm:"not null"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	TamanoID         *int64
	TamanoNombre     *string
	GuarnicionID     *int64
	GuarnicionNombre *string

	Adicionales []PedidoItemAdicional `gorm:"constraint:OnDelete:CASCADE"`
}

func (PedidoItem) TableName() string { return "pedido_items" }

// PedidoItemAdicional snapshots one chosen add-on of a line (cantidad > 0;
// unselected add-ons are a cart concern and never reach the order).
type PedidoItemAdicional struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	PedidoItemID   int64           `gorm:"index;not null"`
	AdicionalID    int64           `gorm:"not null"`
	Nombre         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (PedidoItemAdicional) TableName() string { return "pedido_item_adicionales" }
