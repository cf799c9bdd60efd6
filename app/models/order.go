package models

import "time"

// Order lifecycle states.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmado"
	StatusDelivered = "entregado"
)

// OrderStatuses lists every valid order state.
var OrderStatuses = []string{StatusPending, StatusConfirmed, StatusDelivered}

// ValidStatus reports whether s is a member of the order state enum.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is a pickup order. Public checkouts leave CreatedBy NULL;
// orders entered from the admin panel record the admin's user id.
type Order struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName string      `gorm:"column:nombre_cliente;size:255;not null" json:"nombre_cliente"`
	Phone        string      `gorm:"column:telefono;size:50;not null" json:"telefono"`
	PickupDate   *time.Time  `gorm:"column:fecha_recogida" json:"fecha_recogida"`
	PickupPlace  string      `gorm:"column:lugar_recogida;size:255" json:"lugar_recogida"`
	Notes        string      `gorm:"column:observaciones;type:text" json:"observaciones"`
	Status       string      `gorm:"column:estado;size:50;not null;default:pendiente" json:"estado"`
	Total        float64     `gorm:"column:total;type:decimal(10,2);not null;default:0" json:"total"`
	CreatedBy    *uint       `gorm:"column:creado_por" json:"creado_por"`
	CreatedAt    time.Time   `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "pedidos" }

// OrderItem is one line of an order. UnitPrice is a snapshot of the
// product price at checkout time; later price edits never rewrite it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"column:pedido_id;not null;index" json:"pedido_id"`
	ProductID uint    `gorm:"column:producto_id;not null" json:"producto_id"`
	Quantity  int     `gorm:"column:cantidad;not null" json:"cantidad"`
	UnitPrice float64 `gorm:"column:precio_unitario;type:decimal(10,2);not null" json:"precio_unitario"`

	ProductName string `gorm:"-" json:"producto,omitempty"` // filled by joins for admin listing
}

func (OrderItem) TableName() string { return "pedido_items" }
