// Package models holds the GORM models. Table and column names follow
// the storefront's relational schema, JSON tags follow its API contract.
package models

import "time"

// User is an admin panel account. Customers never have accounts.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:nombre;size:255;not null" json:"nombre"`
	Email     string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role      string    `gorm:"column:rol;size:50;not null;default:admin" json:"rol"`
	Active    bool      `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"column:creado_en;autoCreateTime" json:"creado_en"`
}

// TableName overrides GORM's pluralised default.
func (User) TableName() string { return "usuarios" }
