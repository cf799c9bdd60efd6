package models

import "time"

// Product is a catalog item. Deactivation is a soft delete: the row
// stays so historical order lines keep their reference.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:nombre;size:255;not null" json:"nombre"`
	Description string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	Price       float64   `gorm:"column:precio;type:decimal(10,2);not null" json:"precio"`
	ImageURL    string    `gorm:"column:imagen_url;size:500" json:"imagen_url"`
	Category    string    `gorm:"column:categoria;size:100;index" json:"categoria"`
	Stock       int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Active      bool      `gorm:"column:activo;not null;default:true;index" json:"activo"`
	CreatedAt   time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
}

func (Product) TableName() string { return "productos" }
