package models

import "time"

// Offer is a time-windowed promotional banner. An offer is visible to
// the public only while Active and inside [StartsAt, EndsAt]. Either
// bound may be NULL, meaning unbounded on that side.
type Offer struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:titulo;size:255;not null" json:"titulo"`
	Description string     `gorm:"column:descripcion;type:text" json:"descripcion"`
	Discount    float64    `gorm:"column:descuento;type:decimal(5,2)" json:"descuento"`
	StartsAt    *time.Time `gorm:"column:fecha_inicio" json:"fecha_inicio"`
	EndsAt      *time.Time `gorm:"column:fecha_fin" json:"fecha_fin"`
	Active      bool       `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt   time.Time  `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
}

func (Offer) TableName() string { return "ofertas" }
