// Package seeders populates the database with its bootstrap data.
package seeders

import (
	"gorm.io/gorm"
)

// Seeder is a named seeding step.
type Seeder struct {
	Name string
	Run  func(db *gorm.DB) error
}

var registry []Seeder

// Register adds a seeder. Seeders run in registration order.
func Register(s Seeder) {
	registry = append(registry, s)
}

// Run executes every registered seeder against db.
func Run(db *gorm.DB) error {
	for _, s := range registry {
		if err := s.Run(db); err != nil {
			return err
		}
	}
	return nil
}
